package utils

import (
	"reflect"

	"github.com/spf13/viper"
)

// bindEnv registers every mapstructure key of target with viper so that
// Unmarshal picks up values that only exist in the environment.
func bindEnv(v *viper.Viper, target interface{}) {
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}
		_ = v.BindEnv(key)
	}
}
