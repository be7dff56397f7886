package spatial

const (
	defaultQuality = 95
	outputExt      = ".jpg"
)

// Role names an exported image within an extraction plan.
type Role string

const (
	RolePrimary Role = "primary"
	RoleLeft    Role = "left"
	RoleRight   Role = "right"
)

// Container-level property keys.
const (
	KeyGroups            = "Groups"
	KeyGroupType         = "GroupType"
	KeyGroupIndex        = "GroupIndex"
	KeyGroupIndexLeft    = "GroupImageIndexLeft"
	KeyGroupIndexRight   = "GroupImageIndexRight"
	KeyGroupImageIndices = "GroupImageIndices"
	KeyImageCount        = "ImageCount"
	KeyPrimaryIndex      = "PrimaryImageIndex"
	KeyMPFVersion        = "MPFVersion"
)

// Per-image property keys. EXIF fields use the goexif field names.
const (
	KeyPixelWidth      = "PixelWidth"
	KeyPixelHeight     = "PixelHeight"
	KeyMPType          = "MPType"
	KeyMPIndividualNum = "MPIndividualNum"
	KeyOrientation     = "Orientation"
)

// GroupType identifies the kind of an image group.
type GroupType string

const (
	GroupStereoPair GroupType = "StereoPair"
	GroupDisparity  GroupType = "Disparity"
	GroupMultiAngle GroupType = "MultiAngle"
	GroupPanorama   GroupType = "Panorama"
)
