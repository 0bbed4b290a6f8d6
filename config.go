package tokay

import "fmt"

// Config is a small namespaced key/value store for ambient runtime
// tunables, adapted from the teacher's Config (grammar.*/compiler.*
// namespaces) to this engine's own knobs.
type Config map[string]*cfgVal

// NewConfig returns a Config primed with this engine's defaults.
func NewConfig() *Config {
	c := make(Config)
	c.SetBool("vm.memo", true)
	c.SetInt("vm.max_main_steps", 0)
	c.SetBool("vm.trace", false)
	return &c
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_Int
	cfgValType_String
)

func (vt cfgValType) String() string {
	return map[cfgValType]string{
		cfgValType_Undefined: "undefined",
		cfgValType_Bool:      "bool",
		cfgValType_Int:       "int",
		cfgValType_String:    "string",
	}[vt]
}

type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asInt    int
	asString string
}

func (c *Config) SetBool(path string, v bool) {
	(*c)[path] = &cfgVal{typ: cfgValType_Bool, asBool: v}
}

func (c *Config) SetInt(path string, v int) {
	(*c)[path] = &cfgVal{typ: cfgValType_Int, asInt: v}
}

func (c *Config) SetString(path string, v string) {
	(*c)[path] = &cfgVal{typ: cfgValType_String, asString: v}
}

func (c *Config) GetBool(path string) bool {
	v, ok := (*c)[path]
	if !ok {
		panic(fmt.Sprintf("bool setting %q does not exist", path))
	}
	if v.typ != cfgValType_Bool {
		panic(fmt.Sprintf("can't retrieve bool from %q variable", v.typ))
	}
	return v.asBool
}

func (c *Config) GetInt(path string) int {
	v, ok := (*c)[path]
	if !ok {
		panic(fmt.Sprintf("int setting %q does not exist", path))
	}
	if v.typ != cfgValType_Int {
		panic(fmt.Sprintf("can't retrieve int from %q variable", v.typ))
	}
	return v.asInt
}

func (c *Config) GetString(path string) string {
	v, ok := (*c)[path]
	if !ok {
		panic(fmt.Sprintf("string setting %q does not exist", path))
	}
	if v.typ != cfgValType_String {
		panic(fmt.Sprintf("can't retrieve string from %q variable", v.typ))
	}
	return v.asString
}
