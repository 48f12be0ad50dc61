// Package scene defines the contract between the baking code and the host
// application that owns the animated objects.
package scene

import "strconv"

// LocatorSuffix is appended to the source object's name.
const LocatorSuffix = "_loc"

// UniqueName returns base if it is free, otherwise base1, base2, ...
func UniqueName(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		name := base + strconv.Itoa(i)
		if !taken(name) {
			return name
		}
	}
}
