package ngschema

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// argKindName renders a model.ArgKind the way the teacher's
// twktree.FileType values render in a tweak template dump: a short,
// human-legible name rather than the bare int.
var argKindName = [...]string{
	"word", "integer", "long", "itemslot", "bool", "string", "import",
	"array_word", "array_byte", "array_nybble", "array_long",
}

type schemaYAML struct {
	Tag            byte     `yaml:"tag"`
	Args           []string `yaml:"args,omitempty"`
	OptionsOnly    bool     `yaml:"optionsOnly,omitempty"`
	MaxOccurrences int      `yaml:"maxOccurrences"`
}

// MarshalYAML renders s the way the teacher's VFSAbstractNode renders a
// tweak template: a flat, comment-free structural dump -- here intended
// to be diffed against engine behavior while maintaining the catalog,
// not to be re-parsed back into a Schema.
func (s *Schema) MarshalYAML() (interface{}, error) {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = argKindName[a]
	}
	return schemaYAML{
		Tag:            s.Tag,
		Args:           args,
		OptionsOnly:    s.OptionsOnly,
		MaxOccurrences: s.MaxOccurrences,
	}, nil
}

// DumpYAML renders the whole catalog, sorted by name for stable output,
// backing the `-dump-schema` CLI flag.
func DumpYAML() (string, error) {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	ordered := make(map[string]*Schema, len(catalog))
	for _, name := range names {
		ordered[name] = catalog[name]
	}

	out := yaml.Node{}
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range names {
		var valueNode yaml.Node
		if err := valueNode.Encode(catalog[name]); err != nil {
			return "", err
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &valueNode)
	}
	out.Kind = yaml.DocumentNode
	out.Content = []*yaml.Node{doc}

	b, err := yaml.Marshal(&out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
