// Copyright (C) 2024 Lumina Payments Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package version

import (
	"fmt"
	"runtime"
)

var sdkVersion = "v0.3.0+dev"

func Get() string {
	return sdkVersion
}

// UserAgent identifies the SDK on every request so the platform can track
// client versions in the wild.
func UserAgent() string {
	return fmt.Sprintf("lumina-go-sdk/%s go/%s", sdkVersion, runtime.Version())
}
