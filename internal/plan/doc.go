// Package plan builds the artifact manifest of a generation run.
//
// Planning pipeline, given resolved features:
//  1. One model artifact per filtered model descriptor.
//  2. One API artifact per named resource group.
//  3. Supporting files: README, build descriptor (generatePom), REST
//     application class (unless interfaceOnly), specification copy (when a
//     location is set) and the supporting files of the selected variant.
//
// Planning is pure. Supporting files other than the specification copy are
// marked write-if-absent; honoring that is the writer's job.
package plan
