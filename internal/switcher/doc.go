// Package switcher maintains the version switcher registry: the JSON
// document a documentation site's version-selector UI reads to offer links
// to every published version.
//
// The registry is the only record of which doc versions are publicly linked,
// so the package is built around not losing it: an unparseable existing file
// aborts the update instead of being overwritten, and writes go through a
// temp-file-and-rename so an interrupted run leaves the previous registry
// intact.
//
// Update an on-disk registry:
//
//	err := switcher.Update("switcher.json", "v1.0", "org/repo", switcher.NewestFirst)
//
// Or work with a loaded registry directly:
//
//	reg, err := switcher.Load("switcher.json")
//	if err != nil {
//	    return err
//	}
//	if err := reg.Add("v1.0", "org/repo", switcher.NewestFirst); err != nil {
//	    return err
//	}
//	return reg.WriteFile("switcher.json")
package switcher
