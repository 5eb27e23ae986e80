package component

// CameraTargetComponent marks the single entity the camera follows
type CameraTargetComponent struct{}
