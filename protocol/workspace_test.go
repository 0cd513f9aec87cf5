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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.bennypowers.dev/jsgraph/protocol"
)

func TestParseWorkspaceProtocol_RoundTrip(t *testing.T) {
	cases := []string{
		"*",
		"^1.2.3",
		"~1.2.3",
		"./sibling",
		"../sibling",
		"1.2.3",
		"foo@^1.2.3",
		"@scope/pkg@^1.2.3",
	}
	for _, s := range cases {
		s := s
		t.Run(s, func(t *testing.T) {
			w, err := protocol.ParseWorkspaceProtocol(s)
			require.NoError(t, err)
			assert.Equal(t, s, w.String())

			w2, err := protocol.ParseWorkspaceProtocol(w.String())
			require.NoError(t, err)
			assert.Equal(t, w, w2)
		})
	}
}

func TestParseWorkspaceProtocol_StarNoVersion(t *testing.T) {
	_, err := protocol.ParseWorkspaceProtocol("*1.2.3")
	assert.ErrorIs(t, err, protocol.ErrStarNoVersion)
}

func TestParseWorkspaceProtocol_ScopedAlias(t *testing.T) {
	w, err := protocol.ParseWorkspaceProtocol("@scope/pkg@^1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "@scope/pkg", w.Alias)
	assert.Equal(t, protocol.WorkspaceCaret, w.Kind)
	assert.Equal(t, "1.2.3", w.Version)
}
