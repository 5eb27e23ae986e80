package engine

import "github.com/lixenwraith/topple/parameter"

// DefaultTestStep is the fixed step used by tests across packages
const DefaultTestStep = parameter.DefaultStep
