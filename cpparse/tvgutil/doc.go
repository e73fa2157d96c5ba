// Package tvgutil is a read-only adapter from the TVG-Util time-varying-graph
// edge list format to a Multigraph. Each edge line names one contact and may
// list several (rate, delay) generations to model a link whose characteristics
// change partway through its window; this adapter takes only the first
// generation, matching the specification's explicit scope, and forces a single
// contact-manager type (EVLManager) since the format carries no notion of
// queueing or segmentation.
package tvgutil
