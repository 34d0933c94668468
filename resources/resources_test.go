// This file is part of Retroprof.
//
// Retroprof is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroprof is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroprof.  If not, see <https://www.gnu.org/licenses/>.

package resources_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jetsetilly/retroprof/resources"
	"github.com/jetsetilly/retroprof/test"
)

func TestUniqueFilename(t *testing.T) {
	re := regexp.MustCompile(`^memviz_game_\d{8}_\d{6}$`)
	fn := resources.UniqueFilename("memviz", "/tmp/profiles/game.stacks")
	test.ExpectSuccess(t, re.MatchString(fn), fn)

	re = regexp.MustCompile(`^memviz_\d{8}_\d{6}$`)
	fn = resources.UniqueFilename("memviz", "")
	test.ExpectSuccess(t, re.MatchString(fn), fn)
}

func TestJoinPathPortable(t *testing.T) {
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)

	tmp := t.TempDir()
	test.DemandSuccess(t, os.Chdir(tmp))
	defer os.Chdir(wd)

	test.DemandSuccess(t, os.Mkdir(".retroprof", 0o700))

	pth, err := resources.JoinPath("rules", "flame.yaml")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".retroprof", "rules", "flame.yaml"))

	// the directory has been created but not the file
	info, err := os.Stat(filepath.Join(".retroprof", "rules"))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())
	_, err = os.Stat(pth)
	test.ExpectFailure(t, err)

	// base path is not prepended twice
	pth2, err := resources.JoinPath(pth)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth2, pth)
}
