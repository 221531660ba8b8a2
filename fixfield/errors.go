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

package fixfield

import "fmt"

// ConfigErrorKind enumerates the ways registry construction can fail.
// ConfigErrors are raised at startup and prevent the process from
// starting; they never occur after Seal().
type ConfigErrorKind int

const (
	UnknownField ConfigErrorKind = iota
	RegistryCollisionTag
	RegistryCollisionName
	RegistrySealed
)

type ConfigError struct {
	Kind ConfigErrorKind
	Tag  Tag
	Name string
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case UnknownField:
		return fmt.Sprintf("fixfield: unknown field %q", e.Name)
	case RegistryCollisionTag:
		return fmt.Sprintf("fixfield: tag %d already registered", e.Tag)
	case RegistryCollisionName:
		return fmt.Sprintf("fixfield: name %q already registered", e.Name)
	case RegistrySealed:
		return fmt.Sprintf("fixfield: registry is sealed, cannot register tag %d (%s)", e.Tag, e.Name)
	default:
		return "fixfield: config error"
	}
}
