package debugui

import (
	"github.com/plus3/scenecs/ecs"
)

// Selection is the singleton shared by the entity browser and the component
// inspector. Entity is ecs.Nil when nothing is selected.
type Selection struct {
	Entity ecs.Entity
}

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selected ecs.Entity
}

type PoolViewerComponent struct {
	cache         *PoolViewerCache
	selectedPool  string
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[string]bool
	cache                  *QueryDebuggerCache
}
