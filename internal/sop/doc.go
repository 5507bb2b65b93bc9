// Package sop decomposes a vision result into the fixed personal-productivity
// taxonomy: the four-stage SOP (WRITE_PLAN, PLAN, DO, CHECK) with named
// sub-systems, the static 4-week manifestation path, and pairwise relation
// detection across a stored collection.
//
// Everything here is a pure function over vision types. The taxonomy and the
// week-to-category table are compile-time constants; missing modules or
// sub-systems in a result fall back to literal defaults rather than failing,
// because the mapping coverage is a prompt-level contract the model may break.
package sop
