// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package contract holds the input limits seqdiag enforces on translation
// unit dumps.
//
// # Dump Size Limit
//
// Dumps are decoded fully into memory, so each one is checked against a
// size limit before it is read:
//
//	if err := contract.ValidateUnitSize(path, info.Size()).Err(); err != nil {
//	    return nil, err
//	}
//
// The default of 256 MiB (DefaultMaxUnitBytes) can be changed with the
// SEQDIAG_MAX_UNIT_BYTES environment variable:
//
//	export SEQDIAG_MAX_UNIT_BYTES=1073741824  # 1 GiB
//
// Unset, non-numeric or non-positive values fall back to the default.
package contract
