package manifest

import (
	"go.yaml.in/yaml/v4"
)

func yamlRoot(data []byte) (*yaml.Node, *yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	if doc.Kind == 0 {
		// empty file
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil, ErrNotObject
	}
	return &doc, doc.Content[0], nil
}

func yamlVersion(data []byte) (string, bool, error) {
	_, root, err := yamlRoot(data)
	if err != nil {
		return "", false, err
	}
	v := mappingValue(root, VersionKey)
	if v == nil {
		return "", false, nil
	}
	if v.Kind != yaml.ScalarNode {
		return "", true, nil
	}
	return v.Value, true, nil
}

func setYAMLVersion(data []byte, version string) ([]byte, error) {
	doc, root, err := yamlRoot(data)
	if err != nil {
		return nil, err
	}

	if v := mappingValue(root, VersionKey); v != nil {
		v.Kind = yaml.ScalarNode
		v.Tag = "!!str"
		v.Value = version
		v.Content = nil
	} else {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: VersionKey}
		val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: version}
		root.Content = append([]*yaml.Node{key, val}, root.Content...)
	}
	return yaml.Marshal(doc)
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	var found *yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			found = m.Content[i+1]
		}
	}
	return found
}
