package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Provide fills a config struct from the environment. Defaults come from
// the passed value; variables are read with the uppercased service name as
// prefix, double underscore separating sections, e.g.
// FIXJOB_POSTGRES__HOST for serviceName "fixjob".
func Provide[T any](serviceName string, defaultCfg T) T {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultCfg, "koanf"), nil); err != nil {
		panic(fmt.Errorf("load default config: %w", err))
	}

	prefix := strings.ToUpper(serviceName) + "_"
	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, prefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		panic(fmt.Errorf("load env config: %w", err))
	}

	var cfg T
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(fmt.Errorf("unmarshal config: %w", err))
	}
	return cfg
}
