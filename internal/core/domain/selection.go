package domain

import "go.trai.ch/zerr"

// Selection is the resolved component and configuration every build stage works with.
type Selection struct {
	Component     string
	Configuration string
}

// SelectConfiguration resolves which configuration of a component to build.
//
// An empty component selects the manifest's primary component. An empty
// configuration selects the component's default. The resolved configuration
// must be declared for the component.
func (m *Manifest) SelectConfiguration(component, configuration string) (Selection, error) {
	if component == "" {
		component = m.Name
	}

	settings, ok := m.Components[component]
	if !ok {
		return Selection{}, zerr.With(zerr.Wrap(ErrMissingComponent, "component not declared in manifest"), "component", component)
	}

	if configuration == "" {
		configuration = settings.DefaultConfig
	}
	if !settings.Supports(configuration) {
		err := zerr.Wrap(ErrInvalidBuildConfiguration, configuration+" not found in configurations list")
		err = zerr.With(err, "component", component)
		return Selection{}, zerr.With(err, "configuration", configuration)
	}

	return Selection{Component: component, Configuration: configuration}, nil
}
