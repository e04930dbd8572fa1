package config

import "reflect"

// SetByName mutates the single field whose `toml` tag matches name,
// the lookup the engine facade's `set_option` (spec §6) needs to turn a
// UCI option name into a field write without a hand-maintained switch
// over every tunable. Reports whether name was recognized.
func (t *Tunables) SetByName(name string, value int) bool {
	v := reflect.ValueOf(t).Elem()
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Tag.Get("toml") == name {
			v.Field(i).SetInt(int64(value))
			return true
		}
	}
	return false
}

// Get returns the current value of the field whose `toml` tag matches
// name, for a driver that wants to echo the option back (e.g. UCI's
// `setoption` acknowledgement or a `show options` command).
func (t *Tunables) Get(name string) (int, bool) {
	v := reflect.ValueOf(t).Elem()
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Tag.Get("toml") == name {
			return int(v.Field(i).Int()), true
		}
	}
	return 0, false
}
