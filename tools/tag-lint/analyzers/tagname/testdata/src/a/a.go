package a

import "entities"

type TagBuilder struct{}

func (b *TagBuilder) Add(keys ...entities.Key) *TagBuilder { return b }

type TagService struct{}

func (s *TagService) Tag(kind entities.Kind, names ...string) *TagBuilder { return &TagBuilder{} }

type Other struct{}

func (o *Other) Tag(kind entities.Kind, names ...string) {}

func bad(s *TagService) {
	s.Tag(entities.KindItem, "forge:ores", "forge:ores iron") // want `invalid tag name "forge:ores iron"`
	s.Tag(entities.KindItem, "")                             // want "empty tag name"
	s.Tag(entities.KindItem, "forge:ingots/copper-alloy")    // want `invalid tag name`
	_ = entities.ValidateTagName("ore.iron")                 // want `invalid tag name "ore.iron"`
	_, _ = entities.ParseKey("@3")                           // want `key "@3" has no id`
	_, _ = entities.ParseKey("minecraft:wool@x")             // want `invalid meta "x"`
}

func good(s *TagService, o *Other, dynamic string) {
	s.Tag(entities.KindItem, "forge:ores/iron", "oreIron", "c:ingots_copper")
	s.Tag(entities.KindItem, dynamic)
	o.Tag(entities.KindItem, "not checked on other types")
	_ = entities.ValidateTagName("forge:dyes/red")
	_, _ = entities.ParseKey("minecraft:wool@*")
	_, _ = entities.ParseKey("minecraft:dye@14")
}
