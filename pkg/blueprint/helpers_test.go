package blueprint

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// 🧪 fixture describes a WHAM missile blueprint rendered in the layout the game writes.
type fixture struct {
	subtype      string
	omitSubtype  bool
	displayName  string
	groupNames   []string
	items        []string
	payloads     []string
	lineEnding   string
	extraGridXML string

	omitDeclaration bool
}

func newFixture() *fixture {
	return &fixture{
		subtype:     "MissileHull 42",
		displayName: "Homing Missile 42",
		groupNames:  []string{"Missile Group 42"},
		items: []string{
			"(Missile Group 42) Warhead",
			"(Missile Group 42) Program",
		},
		payloads: []string{"[WHAM]\nMissile number=42\nFire ticks=10\n"},
	}
}

func (f *fixture) bytes() []byte {
	var b strings.Builder
	w := func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }

	if !f.omitDeclaration {
		w(`<?xml version="1.0"?>`)
	}
	w(`<Definitions xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	w(`  <ShipBlueprints>`)
	w(`    <ShipBlueprint xsi:type="MyObjectBuilder_ShipBlueprintDefinition">`)
	if f.omitSubtype {
		w(`      <Id Type="MyObjectBuilder_ShipBlueprintDefinition" />`)
	} else {
		w(`      <Id Type="MyObjectBuilder_ShipBlueprintDefinition" Subtype="%s" />`, textEscaper.Replace(f.subtype))
	}
	w(`      <DisplayName>Engineer</DisplayName>`)
	w(`      <CubeGrids>`)
	w(`        <CubeGrid>`)
	w(`          <SubtypeName />`)
	w(`          <EntityId>118294817204518394</EntityId>`)
	w(`          <GridSizeEnum>Small</GridSizeEnum>`)
	w(`          <CubeBlocks>`)
	for i, item := range f.items {
		w(`            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_TerminalBlock">`)
		w(`              <SubtypeName>Block%d</SubtypeName>`, i)
		w(`              <CustomName>%s</CustomName>`, textEscaper.Replace(item))
		w(`              <ShowOnHUD>false</ShowOnHUD>`)
		w(`            </MyObjectBuilder_CubeBlock>`)
	}
	for _, payload := range f.payloads {
		payload = strings.ReplaceAll(payload, "\n", f.newline())
		w(`            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_MyProgrammableBlock">`)
		w(`              <SubtypeName>SmallProgrammableBlock</SubtypeName>`)
		w(`              <CustomData>%s</CustomData>`, textEscaper.Replace(payload))
		w(`            </MyObjectBuilder_CubeBlock>`)
	}
	w(`          </CubeBlocks>`)
	w(`          <DisplayName>%s</DisplayName>`, textEscaper.Replace(f.displayName))
	w(`          <DestructibleBlocks>true</DestructibleBlocks>`)
	if f.extraGridXML != "" {
		w(`%s`, f.extraGridXML)
	}
	w(`          <BlockGroups>`)
	for _, group := range f.groupNames {
		w(`            <MyObjectBuilder_BlockGroup>`)
		w(`              <Name>%s</Name>`, textEscaper.Replace(group))
		w(`              <Blocks>`)
		w(`                <Vector3I>`)
		w(`                  <X>0</X>`)
		w(`                  <Y>0</Y>`)
		w(`                  <Z>1</Z>`)
		w(`                </Vector3I>`)
		w(`              </Blocks>`)
		w(`            </MyObjectBuilder_BlockGroup>`)
	}
	w(`          </BlockGroups>`)
	w(`        </CubeGrid>`)
	w(`      </CubeGrids>`)
	w(`      <WorkshopId>0</WorkshopId>`)
	w(`      <OwnerSteamId>76561198000000000</OwnerSteamId>`)
	w(`      <Points>0</Points>`)
	w(`    </ShipBlueprint>`)
	w(`  </ShipBlueprints>`)
	b.WriteString(`</Definitions>`)

	return []byte(b.String())
}

func (f *fixture) newline() string {
	if f.lineEnding == "" {
		return "\n"
	}
	return f.lineEnding
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}
