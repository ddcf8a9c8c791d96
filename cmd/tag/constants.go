package main

// DefaultKind is used when --kind is not given.
const DefaultKind = "item"

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}
