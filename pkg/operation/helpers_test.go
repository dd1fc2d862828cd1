package operation

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/walteh/whamdup/pkg/library"
	"github.com/walteh/whamdup/pkg/log"
	"github.com/walteh/whamdup/pkg/prompt"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

// missileXML renders a small WHAM missile blueprint numbered n.
func missileXML(display string, n int) string {
	return fmt.Sprintf(`<?xml version="1.0"?>
<Definitions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <ShipBlueprints>
    <ShipBlueprint xsi:type="MyObjectBuilder_ShipBlueprintDefinition">
      <Id Type="MyObjectBuilder_ShipBlueprintDefinition" Subtype="%[1]s %[2]d" />
      <CubeGrids>
        <CubeGrid>
          <CubeBlocks>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Warhead">
              <CustomName>(Missile Group %[2]d) Warhead</CustomName>
            </MyObjectBuilder_CubeBlock>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_MyProgrammableBlock">
              <CustomName>(Missile Group %[2]d) Program</CustomName>
              <CustomData>[WHAM]
Missile number=%[2]d
</CustomData>
            </MyObjectBuilder_CubeBlock>
          </CubeBlocks>
          <DisplayName>%[1]s %[2]d</DisplayName>
          <BlockGroups>
            <MyObjectBuilder_BlockGroup>
              <Name>Missile Group %[2]d</Name>
            </MyObjectBuilder_BlockGroup>
          </BlockGroups>
        </CubeGrid>
      </CubeGrids>
    </ShipBlueprint>
  </ShipBlueprints>
</Definitions>`, display, n)
}

// newTestLibrary creates a library holding the given blueprints, keyed by folder name.
func newTestLibrary(t *testing.T, blueprints map[string]string) *library.Library {
	t.Helper()
	root := t.TempDir()
	for name, content := range blueprints {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, library.BlueprintFile), []byte(content), 0o644))
	}
	return library.New(root)
}

func readBlueprint(t *testing.T, lib *library.Library, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(lib.Root(), name, library.BlueprintFile))
	require.NoError(t, err)
	return string(data)
}

func testConsole(t *testing.T, input string) (prompt.Prompter, *bytes.Buffer) {
	t.Helper()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)
	out := &bytes.Buffer{}
	return prompt.NewConsole(strings.NewReader(input), out), out
}

func testLogger() (*log.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return log.New(buf, zerolog.Disabled), buf
}
