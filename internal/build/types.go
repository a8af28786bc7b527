package build

// Asset is one emitted output artifact.
type Asset struct {
	// Name is the artifact file name, e.g. "main.js".
	Name string `yaml:"name" json:"name"`

	// Size is the artifact size in bytes.
	Size int64 `yaml:"size" json:"size"`

	// Chunks lists the ids of the bundle groups emitted into this artifact.
	Chunks []int `yaml:"chunks" json:"chunks"`

	// ChunkNames lists the names of those bundle groups, where named.
	ChunkNames []string `yaml:"chunkNames" json:"chunkNames"`

	// Emitted is true if the artifact was written to the output directory
	// during this build rather than reused unchanged.
	Emitted bool `yaml:"emitted" json:"emitted"`
}

// Module is one source-level work unit transformed by the build.
type Module struct {
	// ID is the stable module identifier.
	ID string `yaml:"id" json:"id"`

	// Name is the human-oriented module name. Often equal to ID.
	Name string `yaml:"name" json:"name"`

	// Size is the module's total byte size.
	Size int64 `yaml:"size" json:"size"`

	// Sizes optionally breaks Size down per source type (e.g.
	// "javascript", "css"). May be nil when the build does not track
	// sub-type sizes.
	Sizes map[string]int64 `yaml:"sizes,omitempty" json:"sizes,omitempty"`

	// Chunks lists the ids of the bundle groups containing this module.
	Chunks []int `yaml:"chunks" json:"chunks"`

	// Depth is the distance from the nearest entry module.
	Depth int `yaml:"depth" json:"depth"`

	// Issuer is the id of the module that first requested this one.
	// Empty for entry modules.
	Issuer string `yaml:"issuer,omitempty" json:"issuer,omitempty"`

	// Cacheable is false when the module must be rebuilt every run.
	Cacheable bool `yaml:"cacheable" json:"cacheable"`

	// Built is true when the module was transformed during this build.
	Built bool `yaml:"built" json:"built"`

	// Optional is true when every request for this module is optional.
	Optional bool `yaml:"optional,omitempty" json:"optional,omitempty"`

	// Prefetched is true when the module was queued before being needed.
	Prefetched bool `yaml:"prefetched,omitempty" json:"prefetched,omitempty"`

	// Failed is true when transforming the module failed.
	Failed bool `yaml:"failed,omitempty" json:"failed,omitempty"`

	// Warnings and Errors count the problems attached to this module.
	Warnings int `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Errors   int `yaml:"errors,omitempty" json:"errors,omitempty"`

	// Reasons lists the incoming references that pulled this module into
	// the build.
	Reasons []Reference `yaml:"reasons,omitempty" json:"reasons,omitempty"`

	// UsedExports and ProvidedExports are the consumed and exported
	// symbol sets, where the build tracked them.
	UsedExports     []string `yaml:"usedExports,omitempty" json:"usedExports,omitempty"`
	ProvidedExports []string `yaml:"providedExports,omitempty" json:"providedExports,omitempty"`
}

// Reference is one incoming dependency edge: the referencing module and
// the request that created the edge.
type Reference struct {
	// ModuleID is the id of the referencing module.
	ModuleID string `yaml:"module" json:"module"`

	// ModuleName is the referencing module's name.
	ModuleName string `yaml:"moduleName" json:"moduleName"`

	// Type is the dependency type, e.g. "import" or "require".
	Type string `yaml:"type" json:"type"`

	// Request is the literal request string from the source.
	Request string `yaml:"request" json:"request"`
}

// Chunk is one bundle group: a set of work units emitted together.
type Chunk struct {
	// ID is the bundle group id.
	ID int `yaml:"id" json:"id"`

	// Names lists the group's names, where named.
	Names []string `yaml:"names" json:"names"`

	// Size is the summed byte size of the group's modules.
	Size int64 `yaml:"size" json:"size"`

	// Files lists the artifact names emitted for this group.
	Files []string `yaml:"files" json:"files"`

	// Parents lists the ids of parent bundle groups.
	Parents []int `yaml:"parents,omitempty" json:"parents,omitempty"`

	// Entry is true for groups loaded on startup.
	Entry bool `yaml:"entry,omitempty" json:"entry,omitempty"`

	// Modules lists the ids of the modules contained in the group.
	Modules []string `yaml:"modules,omitempty" json:"modules,omitempty"`

	// Origins describes where the group was created.
	Origins []Origin `yaml:"origins,omitempty" json:"origins,omitempty"`
}

// Origin records one creation point of a bundle group.
type Origin struct {
	// ModuleID is the module whose request created the group.
	ModuleID string `yaml:"module" json:"module"`

	// ModuleName is that module's name.
	ModuleName string `yaml:"moduleName" json:"moduleName"`

	// Request is the request string that created the group.
	Request string `yaml:"request" json:"request"`
}

// Entrypoint is one deployment group: an ordered set of bundle groups
// delivered together.
type Entrypoint struct {
	// Name is the deployment group name, e.g. "main".
	Name string `yaml:"name" json:"name"`

	// Chunks lists the ids of the bundle groups in load order.
	Chunks []int `yaml:"chunks" json:"chunks"`
}

// Problem is one build error or warning.
type Problem struct {
	// Message is the human-readable problem text.
	Message string `yaml:"message" json:"message"`

	// ModuleID optionally names the module the problem belongs to.
	ModuleID string `yaml:"module,omitempty" json:"module,omitempty"`
}
