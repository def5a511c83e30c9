// Package configuration loads the farm publish settings document, validates it and converts it
// into the profiles and defaults used for job-info resolution.
package configuration

import (
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// Settings is the settings document as authored by a farm administrator.
type Settings struct {
	// Semantic version of the document layout, checked against SupportedVersions.
	Version string          `mapstructure:"version" validate:"required"`
	Publish PublishSettings `mapstructure:"publish"`
}

// PublishSettings holds one entry per publish plugin.
type PublishSettings struct {
	CollectDeadlinePools       PoolSettings                  `mapstructure:"CollectDeadlinePools"`
	CollectJobInfo             CollectJobInfoSettings        `mapstructure:"CollectJobInfo"`
	CollectAYONServerToFarmJob ToggleSettings                `mapstructure:"CollectAYONServerToFarmJob"`
	ValidateExpectedFiles      ValidateExpectedFilesSettings `mapstructure:"ValidateExpectedFiles"`

	AfterEffectsSubmitDeadline SubmitterSettings        `mapstructure:"AfterEffectsSubmitDeadline"`
	BlenderSubmitDeadline      SubmitterSettings        `mapstructure:"BlenderSubmitDeadline"`
	CelactionSubmitDeadline    SubmitterSettings        `mapstructure:"CelactionSubmitDeadline"`
	FusionSubmitDeadline       FusionSubmitterSettings  `mapstructure:"FusionSubmitDeadline"`
	HarmonySubmitDeadline      SubmitterSettings        `mapstructure:"HarmonySubmitDeadline"`
	HoudiniCacheSubmitDeadline SubmitterSettings        `mapstructure:"HoudiniCacheSubmitDeadline"`
	HoudiniSubmitDeadline      HoudiniSubmitterSettings `mapstructure:"HoudiniSubmitDeadline"`
	MaxSubmitDeadline          SubmitterSettings        `mapstructure:"MaxSubmitDeadline"`
	MayaSubmitDeadline         MayaSubmitterSettings    `mapstructure:"MayaSubmitDeadline"`
	NukeSubmitDeadline         NukeSubmitterSettings    `mapstructure:"NukeSubmitDeadline"`

	ProcessSubmittedCacheJobOnFarm ProcessCacheJobSettings `mapstructure:"ProcessSubmittedCacheJobOnFarm"`
	ProcessSubmittedJobOnFarm      ProcessJobSettings      `mapstructure:"ProcessSubmittedJobOnFarm"`
}

// PoolSettings are the farm pools used when neither the instance nor the artist sets one.
// "-" explicitly leaves the pool unset.
type PoolSettings struct {
	PrimaryPool   string `mapstructure:"primary_pool"`
	SecondaryPool string `mapstructure:"secondary_pool"`
}

type CollectJobInfoSettings struct {
	Enabled  bool              `mapstructure:"enabled"`
	Profiles []ProfileSettings `mapstructure:"profiles" validate:"dive"`
}

// ProfileSettings is a single job-info profile before its overrides are checked against the
// canonical override keys.
type ProfileSettings struct {
	HostNames []string `mapstructure:"host_names"`
	TaskTypes []string `mapstructure:"task_types"`
	TaskNames []string `mapstructure:"task_names"`

	ChunkSize       int              `mapstructure:"chunk_size" validate:"gte=1"`
	Priority        int              `mapstructure:"priority" validate:"gte=0,lte=100"`
	Group           string           `mapstructure:"group"`
	LimitGroups     []string         `mapstructure:"limit_groups"`
	PrimaryPool     string           `mapstructure:"primary_pool"`
	SecondaryPool   string           `mapstructure:"secondary_pool"`
	MachineLimit    int              `mapstructure:"machine_limit" validate:"gte=0"`
	MachineList     []string         `mapstructure:"machine_list"`
	MachineListDeny bool             `mapstructure:"machine_list_deny"`
	ConcurrentTasks int              `mapstructure:"concurrent_tasks" validate:"gte=1"`
	Department      string           `mapstructure:"department"`
	UseGpu          bool             `mapstructure:"use_gpu"`
	JobDelay        profile.JobDelay `mapstructure:"job_delay"`

	UsePublished          bool `mapstructure:"use_published"`
	UseAssetDependencies  bool `mapstructure:"use_asset_dependencies"`
	UseWorkfileDependency bool `mapstructure:"use_workfile_dependency"`
	Multiprocess          bool `mapstructure:"multiprocess"`

	EnvAllowedKeys         []string          `mapstructure:"env_allowed_keys"`
	EnvSearchReplaceValues []profile.EnvRule `mapstructure:"env_search_replace_values"`

	// JSON objects pasted into the JobInfo and PluginInfo of the submission.
	AdditionalJobInfo    string `mapstructure:"additional_job_info"`
	AdditionalPluginInfo string `mapstructure:"additional_plugin_info"`

	// Fields the artist may override when publishing.
	Overrides []string `mapstructure:"overrides"`
}

type ToggleSettings struct {
	Enabled bool `mapstructure:"enabled"`
}

type ValidateExpectedFilesSettings struct {
	Enabled           bool     `mapstructure:"enabled"`
	Active            bool     `mapstructure:"active"`
	AllowUserOverride bool     `mapstructure:"allow_user_override"`
	Families          []string `mapstructure:"families"`
	Targets           []string `mapstructure:"targets"`
}

// SubmitterSettings toggle a host submitter and whether the artist can switch it off.
type SubmitterSettings struct {
	Enabled  bool `mapstructure:"enabled"`
	Optional bool `mapstructure:"optional"`
	Active   bool `mapstructure:"active"`
}

type FusionSubmitterSettings struct {
	SubmitterSettings `mapstructure:",squash"`
	ConcurrentTasks   int    `mapstructure:"concurrent_tasks" validate:"gte=1"`
	Plugin            string `mapstructure:"plugin" validate:"oneof=Fusion FusionCmd"`
}

type HoudiniSubmitterSettings struct {
	SubmitterSettings  `mapstructure:",squash"`
	ExportPriority     int    `mapstructure:"export_priority" validate:"gte=0,lte=100"`
	ExportChunkSize    int    `mapstructure:"export_chunk_size" validate:"gte=1"`
	ExportGroup        string `mapstructure:"export_group"`
	ExportLimits       string `mapstructure:"export_limits"`
	ExportMachineLimit int    `mapstructure:"export_machine_limit" validate:"gte=0"`
}

type MayaSubmitterSettings struct {
	SubmitterSettings   `mapstructure:",squash"`
	ImportReference     bool         `mapstructure:"import_reference"`
	TilePriority        int          `mapstructure:"tile_priority" validate:"gte=0,lte=100"`
	TileAssemblerPlugin string       `mapstructure:"tile_assembler_plugin" validate:"oneof=DraftTileAssembler"`
	ScenePatches        []ScenePatch `mapstructure:"scene_patches" validate:"dive"`
	StrictErrorChecking bool         `mapstructure:"strict_error_checking"`
}

// ScenePatch inserts Line into a scene file after lines matching Regex.
type ScenePatch struct {
	Name  string `mapstructure:"name"`
	Regex string `mapstructure:"regex" validate:"regexp"`
	Line  string `mapstructure:"line"`
}

func (p ScenePatch) GetName() string {
	return p.Name
}

type NukeSubmitterSettings struct {
	SubmitterSettings    `mapstructure:",squash"`
	NodeClassLimitGroups []NamedValues `mapstructure:"node_class_limit_groups"`
}

// NamedValues is a named list, e.g. the limit groups for a node class.
type NamedValues struct {
	Name  string   `mapstructure:"name"`
	Value []string `mapstructure:"value"`
}

func (n NamedValues) GetName() string {
	return n.Name
}

type ProcessCacheJobSettings struct {
	Enabled            bool   `mapstructure:"enabled"`
	DeadlineDepartment string `mapstructure:"deadline_department"`
	DeadlinePool       string `mapstructure:"deadline_pool"`
	DeadlineGroup      string `mapstructure:"deadline_group"`
	DeadlinePriority   int    `mapstructure:"deadline_priority" validate:"gte=0,lte=100"`
}

type ProcessJobSettings struct {
	ProcessCacheJobSettings  `mapstructure:",squash"`
	SkipIntegrationRepreList []string    `mapstructure:"skip_integration_repre_list"`
	FamiliesTransfer         []string    `mapstructure:"families_transfer"`
	AOVFilter                []AOVFilter `mapstructure:"aov_filter" validate:"dive"`
}

// AOVFilter lists the regular expressions selecting reviewable AOVs for a host.
type AOVFilter struct {
	Name  string   `mapstructure:"name"`
	Value []string `mapstructure:"value" validate:"dive,regexp"`
}

func (f AOVFilter) GetName() string {
	return f.Name
}
