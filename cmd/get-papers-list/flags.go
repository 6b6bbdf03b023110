package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// bindFlag binds a flag to a settings key. It panics on an unknown flag name,
// which is a programming error caught at startup.
func bindFlag(fs *pflag.FlagSet, key, name string) {
	fl := fs.Lookup(name)
	if fl == nil {
		panic(fmt.Sprintf("flag --%s is not defined", name))
	}
	if err := settings.BindPFlag(key, fl); err != nil {
		panic(err)
	}
}
