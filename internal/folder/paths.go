// Package folder implements path resolution, access decisions and the
// remote provisioning of collaborative folders.
package folder

import "strconv"

// Paths holds the two remote paths of a user's folder. Share is the path the
// technical account shares from; Final is where the folder appears in the
// recipient's space after the share is accepted.
type Paths struct {
	Share string
	Final string
}

// ResolvePaths computes the remote paths for an activity instance. A groupID
// of zero means the activity runs without groups (or the user has none); the
// whole instance folder is shared then. With a group, the group subfolder is
// shared and lands under its own name.
func ResolvePaths(instanceID, groupID uint64) Paths {
	instance := "/" + strconv.FormatUint(instanceID, 10)

	if groupID == 0 {
		return Paths{Share: instance, Final: instance}
	}

	group := "/" + strconv.FormatUint(groupID, 10)

	return Paths{Share: instance + group, Final: group}
}
