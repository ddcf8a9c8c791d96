package entities

type Kind string

const KindItem Kind = "item"

type Key struct {
	ID   string
	Meta int
}

func ValidateTagName(name string) error { return nil }

func ParseKey(s string) (Key, error) { return Key{ID: s}, nil }
