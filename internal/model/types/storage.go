package types

import "github.com/labtrack/lims/internal/model"

// StorageNode is one location of the storage tree with its direct children and boxes.
type StorageNode struct {
	*model.StorageLocation

	TopLevel bool           `json:"isTopLevel"`
	Children []*StorageNode `json:"children"`
	Boxes    []*model.Box   `json:"boxes"`
}

type StorageDeleteResult struct {
	StorageLocationID   int64 `json:"id"`
	ReparentedLocations int64 `json:"reparentedLocations"`
	ReparentedBoxes     int64 `json:"reparentedBoxes"`
}

type CreateStorageRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	ContainerID *int64 `json:"containerId" validate:"omitempty,gt=0"`
	Icon        string `json:"icon" validate:"max=100"`
}
