package types

import "github.com/labtrack/lims/internal/model"

type Manifest struct {
	Shipment *model.Shipment  `json:"shipment"`
	Entries  []*ManifestEntry `json:"entries"`
}

// ManifestEntry lists the aliquots packed in one box of a shipment.
type ManifestEntry struct {
	BoxID    int64            `json:"boxId"`
	BoxName  string           `json:"boxName"`
	Aliquots []*model.Aliquot `json:"aliquots"`
}
