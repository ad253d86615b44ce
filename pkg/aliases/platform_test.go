package aliases

import (
	"errors"
	"maps"
	"strings"

	"github.com/TPGamesNL/Skript/pkg/core"
	json "github.com/goccy/go-json"
)

// fakePlatform is a small in-memory platform for provider tests.
type fakePlatform struct {
	materials map[string]core.Material
	entities  map[string]*core.EntityData
	blockErr  error
}

func newFakePlatform() *fakePlatform {
	mats := []core.Material{
		{Key: "minecraft:stone", Block: true},
		{Key: "minecraft:dirt", Block: true},
		{Key: "minecraft:oak_log", Block: true},
		{Key: "minecraft:white_wool", Block: true},
		{Key: "minecraft:red_wool", Block: true},
		{Key: "minecraft:diamond_sword", MaxDamage: 1561},
		{Key: "minecraft:pig_spawn_egg"},
	}
	p := &fakePlatform{
		materials: make(map[string]core.Material, len(mats)),
		entities: map[string]*core.EntityData{
			"pig": {Type: "minecraft:pig", Name: "pig"},
		},
	}
	for _, m := range mats {
		p.materials[m.Key] = m
	}
	return p
}

func (p *fakePlatform) Name() string { return "fake" }

func (p *fakePlatform) ResolveMaterial(id string) (core.Material, bool) {
	if !strings.Contains(id, ":") {
		id = "minecraft:" + id
	}
	m, ok := p.materials[id]
	return m, ok
}

func (p *fakePlatform) CreateBlockValues(material core.Material, states map[string]string, _ *core.ItemStack, _ core.ItemFlags) (core.BlockValues, error) {
	if p.blockErr != nil {
		return nil, p.blockErr
	}
	if !material.Block || len(states) == 0 {
		return nil, nil
	}
	return core.NewBlockValues(states), nil
}

func (p *fakePlatform) ApplyTag(stack *core.ItemStack, tag string) (core.ItemFlags, error) {
	payload, err := p.DecodePayload(tag)
	if err != nil {
		return 0, err
	}
	if stack.Tags == nil {
		stack.Tags = make(map[string]any, len(payload))
	}
	maps.Copy(stack.Tags, payload)
	return core.FlagChangedTags, nil
}

func (p *fakePlatform) ResolveEntity(name string) (*core.EntityData, bool) {
	e, ok := p.entities[name]
	return e, ok
}

func (p *fakePlatform) DecodePayload(raw string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errors.New("malformed payload")
	}
	return out, nil
}
