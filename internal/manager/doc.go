// Package manager is the central orchestrator: it owns the source and
// context registries, the single active context, the priority blocker list,
// the action state cache and the publish channel. Raw events flow in through
// HandleInput; named actions flow out as published events and cache updates.
package manager
