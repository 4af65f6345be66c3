// Package manager implements the three geometry managers that arrange the
// children of a box: Pack, Grid and Place.
//
// A manager is built for one parent from its ordered child list. The layout
// driver then calls Update once per child with the child's outer rectangle
// and the parent's remaining interior; Pack shrinks that interior as it
// goes, Grid and Place leave it alone. Estimate reports the natural size of
// the children so auto-sized parents can be sized before placement.
//
// Options are typed per manager (PackOptions, GridOptions, PlaceOptions).
// DecodeOptions converts the loosely typed maps found in scene documents.
package manager
