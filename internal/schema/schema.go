package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Handlers represents the content of the 'handlers' block within a bundle.
// The four known categories are decoded directly; anything else lands in
// Remain and is carried through permissively.
type Handlers struct {
	Character   []string `hcl:"character,optional"`
	Delimiter   []string `hcl:"delimiter,optional"`
	Macro       []string `hcl:"macro,optional"`
	Environment []string `hcl:"environment,optional"`
	Remain      hcl.Body `hcl:",remain"`
}

// Fallbacks represents the content of the 'fallbacks' block within a bundle.
type Fallbacks struct {
	Character   string   `hcl:"character,optional"`
	Delimiter   string   `hcl:"delimiter,optional"`
	Macro       string   `hcl:"macro,optional"`
	Environment string   `hcl:"environment,optional"`
	Remain      hcl.Body `hcl:",remain"`
}

// StackItem represents a `stack_item` block, naming the constructor for a
// kind of parse-stack item.
type StackItem struct {
	Kind        string `hcl:"kind,label"`
	Constructor string `hcl:"constructor"`
}

// Tag represents a `tag` block, naming the tagging strategy for a kind of
// completed stack item.
type Tag struct {
	Kind     string `hcl:"kind,label"`
	Strategy string `hcl:"strategy"`
}

// Bundle represents a `bundle` block from a definition file.
type Bundle struct {
	Name       string         `hcl:"name,label"`
	Extends    []string       `hcl:"extends,optional"`
	Handlers   *Handlers      `hcl:"handlers,block"`
	Fallbacks  *Fallbacks     `hcl:"fallbacks,block"`
	StackItems []*StackItem   `hcl:"stack_item,block"`
	Tags       []*Tag         `hcl:"tag,block"`
	Options    hcl.Expression `hcl:"options,optional"`
}

// File represents the top-level structure of a bundle definition file,
// containing any number of bundle blocks.
type File struct {
	Bundles []*Bundle `hcl:"bundle,block"`
	Body    hcl.Body  `hcl:",remain"`
}
