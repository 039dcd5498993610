// Package source contains the device adapters that normalize host input
// callbacks into raw events and forward them to the manager. Sources know
// nothing about actions or contexts; their whole job is noise suppression
// (key auto-repeat), bookkeeping (held buttons, live touch contacts) and
// gesture synthesis.
package source
