/*

Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bennypowers.dev/jsgraph/protocol"
)

func TestParseVersionProtocol_RoundTrip(t *testing.T) {
	cases := []string{
		"*",
		"",
		"1.2.3",
		"^1.2.3",
		"~1.2.3",
		">=1.2.3",
		"1.2.3 - 4.5.6",
		"^1.2.3 || ^2.0.0",
		"file:../sibling",
		"link:../sibling",
		"portal:../sibling",
		"workspace:*",
		"workspace:^1.2.0",
		"workspace:foo@^1.2.3",
		"git+ssh://git@github.com:npm/cli#semver:^5.0",
		"https://example.com/pkg.tgz",
		"npm/cli#v1.0.0",
		"catalog:",
		"catalog:react18",
	}
	for _, s := range cases {
		s := s
		t.Run(s, func(t *testing.T) {
			v, err := protocol.ParseVersionProtocol(s)
			require.NoError(t, err)
			want := s
			switch s {
			case "":
				want = "*"
			case "1.2.3 - 4.5.6":
				want = ">=1.2.3, <=4.5.6"
			}
			assert.Equal(t, want, v.String())

			// parse(display(v)) == v
			v2, err := protocol.ParseVersionProtocol(v.String())
			require.NoError(t, err)
			assert.Equal(t, v, v2)
		})
	}
}

func TestParseVersionProtocol_HyphenRangeDisplay(t *testing.T) {
	v, err := protocol.ParseVersionProtocol("1.2.3 - 4.5.6")
	require.NoError(t, err)
	assert.Equal(t, protocol.KindRequirement, v.Kind)
	assert.Equal(t, ">=1.2.3, <=4.5.6", v.String())
}

func TestParseVersionProtocol_WorkspaceCaretWithAlias(t *testing.T) {
	v, err := protocol.ParseVersionProtocol("workspace:foo@^1.2.3")
	require.NoError(t, err)
	require.Equal(t, protocol.KindWorkspace, v.Kind)
	assert.Equal(t, protocol.WorkspaceCaret, v.Workspace.Kind)
	assert.Equal(t, "foo", v.Workspace.Alias)
	assert.Equal(t, "1.2.3", v.Workspace.Version)
	assert.Equal(t, "workspace:foo@^1.2.3", v.String())
}

func TestParseVersionProtocol_HyphenRangeErrors(t *testing.T) {
	_, err := protocol.ParseVersionProtocol(" - 1.2.3")
	assert.ErrorIs(t, err, protocol.ErrRangeMissingStartVersion)

	_, err = protocol.ParseVersionProtocol("1.2.3 - ")
	assert.ErrorIs(t, err, protocol.ErrRangeMissingStopVersion)
}

func TestRequirement_Matches(t *testing.T) {
	req, err := protocol.ParseRequirement("^1.2.0")
	require.NoError(t, err)
	assert.True(t, req.Matches("1.2.3"))
	assert.True(t, req.Matches("1.9.9"))
	assert.False(t, req.Matches("2.0.0"))
	assert.False(t, req.Matches("1.1.9"))
}

func TestRequirement_MatchesTilde(t *testing.T) {
	req, err := protocol.ParseRequirement("~1.2.3")
	require.NoError(t, err)
	assert.True(t, req.Matches("1.2.9"))
	assert.False(t, req.Matches("1.3.0"))
}

func TestRequirement_MatchesCaretZeroMajor(t *testing.T) {
	req, err := protocol.ParseRequirement("^0.2.3")
	require.NoError(t, err)
	assert.True(t, req.Matches("0.2.9"))
	assert.False(t, req.Matches("0.3.0"))
}

func TestVersionProtocol_JSONRoundTrip(t *testing.T) {
	type deps struct {
		A protocol.VersionProtocol `json:"a"`
	}
	var d deps
	err := json.Unmarshal([]byte(`{"a":"^1.2.3"}`), &d)
	require.NoError(t, err)
	assert.Equal(t, "^1.2.3", d.A.String())
}
