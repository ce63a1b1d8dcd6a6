/*
Copyright © 2024 the riskeer authors.
This file is part of riskeer.

riskeer is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

riskeer is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with riskeer.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command riskeer is a command-line interface for creating cross sections
// and section divisions along the reference line of a flood defence.
package main

import (
	"fmt"
	"os"

	"github.com/breinbaas/riskeer/riskeerutil"
)

func main() {
	if err := riskeerutil.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}
