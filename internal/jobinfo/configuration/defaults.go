package configuration

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultVersion is assumed for documents that do not declare a version.
const DefaultVersion = "1.0.0"

// profileDefaults are applied to every profile key the document leaves out.
var profileDefaults = map[string]interface{}{
	"host_names":                []string{},
	"task_types":                []string{},
	"task_names":                []string{},
	"chunk_size":                999,
	"priority":                  50,
	"group":                     "",
	"limit_groups":              []string{},
	"primary_pool":              "",
	"secondary_pool":            "",
	"machine_limit":             0,
	"machine_list":              []string{},
	"machine_list_deny":         false,
	"concurrent_tasks":          1,
	"department":                "",
	"use_gpu":                   false,
	"job_delay":                 "",
	"use_published":             true,
	"use_asset_dependencies":    true,
	"use_workfile_dependency":   true,
	"multiprocess":              false,
	"env_allowed_keys":          []string{},
	"env_search_replace_values": []interface{}{},
	"additional_job_info":       "",
	"additional_plugin_info":    "",
	"overrides":                 []string{},
}

func submitterDefaults() map[string]interface{} {
	return map[string]interface{}{
		"enabled":  true,
		"optional": false,
		"active":   true,
	}
}

func defaultSettings() map[string]interface{} {
	fusion := submitterDefaults()
	fusion["concurrent_tasks"] = 1
	fusion["plugin"] = "Fusion"

	houdini := submitterDefaults()
	houdini["export_priority"] = 50
	houdini["export_chunk_size"] = 10
	houdini["export_group"] = ""
	houdini["export_limits"] = ""
	houdini["export_machine_limit"] = 0

	maya := submitterDefaults()
	maya["tile_assembler_plugin"] = "DraftTileAssembler"
	maya["import_reference"] = false
	maya["strict_error_checking"] = true
	maya["tile_priority"] = 50
	maya["scene_patches"] = []interface{}{}

	nuke := submitterDefaults()
	nuke["node_class_limit_groups"] = []interface{}{}

	aovFilter := func(host string, patterns ...string) map[string]interface{} {
		return map[string]interface{}{"name": host, "value": patterns}
	}

	return map[string]interface{}{
		"version": DefaultVersion,
		"publish": map[string]interface{}{
			"CollectDeadlinePools": map[string]interface{}{
				"primary_pool":   "",
				"secondary_pool": "",
			},
			"CollectJobInfo": map[string]interface{}{
				"enabled":  false,
				"profiles": []interface{}{},
			},
			"CollectAYONServerToFarmJob": map[string]interface{}{
				"enabled": false,
			},
			"ValidateExpectedFiles": map[string]interface{}{
				"enabled":             true,
				"active":              true,
				"allow_user_override": true,
				"families":            []string{"render"},
				"targets":             []string{"deadline"},
			},
			"AfterEffectsSubmitDeadline": submitterDefaults(),
			"BlenderSubmitDeadline":      submitterDefaults(),
			"CelactionSubmitDeadline":    submitterDefaults(),
			"FusionSubmitDeadline":       fusion,
			"HarmonySubmitDeadline":      submitterDefaults(),
			"HoudiniCacheSubmitDeadline": submitterDefaults(),
			"HoudiniSubmitDeadline":      houdini,
			"MaxSubmitDeadline":          submitterDefaults(),
			"MayaSubmitDeadline":         maya,
			"NukeSubmitDeadline":         nuke,
			"ProcessSubmittedCacheJobOnFarm": map[string]interface{}{
				"enabled":             true,
				"deadline_department": "",
				"deadline_pool":       "",
				"deadline_group":      "",
				"deadline_priority":   50,
			},
			"ProcessSubmittedJobOnFarm": map[string]interface{}{
				"enabled":                     true,
				"deadline_department":         "",
				"deadline_pool":               "",
				"deadline_group":              "",
				"deadline_priority":           50,
				"skip_integration_repre_list": []string{},
				"families_transfer":           []string{"render3d", "render2d", "slate"},
				"aov_filter": []interface{}{
					aovFilter("maya", ".*([Bb]eauty).*"),
					aovFilter("blender", ".*([Bb]eauty).*"),
					aovFilter("aftereffects", ".*"),
					aovFilter("celaction", ".*"),
					aovFilter("harmony", ".*"),
					aovFilter("max", ".*"),
					aovFilter("fusion", ".*"),
				},
			},
		},
	}
}

// setDefaults registers every leaf of the default settings tree with v.
// Lists are leaves: a document that sets a list replaces the default list.
func setDefaults(v *viper.Viper) {
	var walk func(prefix string, node map[string]interface{})
	walk = func(prefix string, node map[string]interface{}) {
		for key, value := range node {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			if child, ok := value.(map[string]interface{}); ok {
				walk(path, child)
				continue
			}
			v.SetDefault(path, value)
		}
	}
	walk("", defaultSettings())
}

// ProfileDefaultsHook fills in the keys a profile leaves out before the profile is decoded.
// Keys are compared case-insensitively, as mapstructure does.
func ProfileDefaultsHook() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != reflect.TypeOf(ProfileSettings{}) {
			return data, nil
		}
		raw, ok := data.(map[string]interface{})
		if !ok {
			return data, nil
		}
		present := make(map[string]bool, len(raw))
		merged := make(map[string]interface{}, len(profileDefaults))
		for key, value := range raw {
			present[strings.ToLower(key)] = true
			merged[key] = value
		}
		for key, value := range profileDefaults {
			if !present[key] {
				merged[key] = value
			}
		}
		return merged, nil
	}
}
