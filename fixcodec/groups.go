/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package fixcodec

import "github.com/gurre/prime-fix-md-go/fixfield"

// GroupSpec names one repeating group: the tag that declares how many
// entries follow, the tag that begins each entry (its delimiter), and
// the set of tags considered part of one entry. Members is what lets
// the decoder tell "next block starts" from "group has ended and the
// next top-level body tag begins" without a full message-type schema.
type GroupSpec struct {
	CountTag fixfield.Tag
	Delim    fixfield.Tag
	Members  map[fixfield.Tag]bool
}

// GroupTable is a catalog of GroupSpecs keyed by count tag. The core
// registers the standard groups the engine's own message types need;
// Clone gives a copy that further group tags can be registered into.
// The venue adapters in this module register no groups of their own.
type GroupTable struct {
	specs map[fixfield.Tag]GroupSpec
}

func NewGroupTable() *GroupTable {
	return &GroupTable{specs: make(map[fixfield.Tag]GroupSpec)}
}

func (g *GroupTable) Register(spec GroupSpec) { g.specs[spec.CountTag] = spec }

func (g *GroupTable) SpecFor(countTag fixfield.Tag) (GroupSpec, bool) {
	s, ok := g.specs[countTag]
	return s, ok
}

// Clone copies all specs into a new table that can be extended without
// changing g.
func (g *GroupTable) Clone() *GroupTable {
	out := NewGroupTable()
	for k, v := range g.specs {
		out.specs[k] = v
	}
	return out
}

func memberSet(tags ...fixfield.Tag) map[fixfield.Tag]bool {
	m := make(map[fixfield.Tag]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

// DefaultGroups returns the repeating groups used by the message types
// this engine builds and parses: the related-symbol list on market data
// requests, the entry-type list on market data requests, the entry
// list on market data snapshots/incremental refreshes, and the
// miscellaneous-fee list on execution reports.
func DefaultGroups() *GroupTable {
	g := NewGroupTable()

	g.Register(GroupSpec{
		CountTag: 146, // NoRelatedSym
		Delim:    55,  // Symbol
		Members:  memberSet(55),
	})
	g.Register(GroupSpec{
		CountTag: 267, // NoMDEntryTypes
		Delim:    269, // MDEntryType
		Members:  memberSet(269),
	})
	g.Register(GroupSpec{
		CountTag: 268, // NoMDEntries
		Delim:    269, // MDEntryType (full refresh form; this engine does not build incremental refreshes)
		Members:  memberSet(269, 270, 271, 272, 273, 290, 2446), // 2446 = AggressorSide (Coinbase Prime extension)
	})
	g.Register(GroupSpec{
		CountTag: 136, // NoMiscFees
		Delim:    137, // MiscFeeAmt
		Members:  memberSet(137, 138, 139),
	})

	return g
}
