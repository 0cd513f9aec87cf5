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

	"github.com/stretchr/testify/require"

	"go.bennypowers.dev/jsgraph/protocol"
)

func TestCatalogs_ResolveDefault(t *testing.T) {
	c := protocol.Catalogs{Default: map[string]string{"react": "^18.2.0"}}
	version, err := c.Resolve("", "react")
	require.NoError(t, err)
	require.Equal(t, "^18.2.0", version)
}

func TestCatalogs_ResolveNamed(t *testing.T) {
	c := protocol.Catalogs{
		Named: map[string]map[string]string{
			"react17": {"react": "^17.0.2"},
		},
	}
	version, err := c.Resolve("react17", "react")
	require.NoError(t, err)
	require.Equal(t, "^17.0.2", version)
}

func TestCatalogs_ResolveUnknownCatalog(t *testing.T) {
	c := protocol.Catalogs{Default: map[string]string{"react": "^18.2.0"}}
	_, err := c.Resolve("missing", "react")
	require.ErrorIs(t, err, protocol.ErrUnknownCatalog)
}

func TestCatalogs_ResolveUnknownPackage(t *testing.T) {
	c := protocol.Catalogs{Default: map[string]string{"react": "^18.2.0"}}
	_, err := c.Resolve("", "vue")
	require.ErrorIs(t, err, protocol.ErrUnknownCatalog)
}
