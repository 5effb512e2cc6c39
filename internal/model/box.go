package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type LabelStyle string

const (
	LabelNumeric    LabelStyle = "numeric"
	LabelAlphabetic LabelStyle = "alphabetic"
)

var ErrInvalidLabel = errors.New("invalid axis label")

// Label renders the 1-based position index on an axis of the given size.
// Alphabetic labels continue past Z as AA, AB, ...
func (s LabelStyle) Label(index, size int, inverted bool) string {
	if inverted {
		index = size + 1 - index
	}
	if s == LabelAlphabetic && index > 0 {
		return alphaLabel(index)
	}
	return strconv.Itoa(index)
}

// Index parses a label rendered by Label back into a 1-based position index.
func (s LabelStyle) Index(label string, size int, inverted bool) (int, error) {
	label = strings.TrimSpace(label)
	var index int
	if s == LabelAlphabetic {
		index = alphaIndex(strings.ToUpper(label))
	} else if n, err := strconv.Atoi(label); err == nil {
		index = n
	}
	if index < 1 || index > size {
		return 0, errors.Wrapf(ErrInvalidLabel, "%q is outside 1..%d", label, size)
	}
	if inverted {
		index = size + 1 - index
	}
	return index, nil
}

func alphaLabel(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func alphaIndex(label string) int {
	if label == "" {
		return 0
	}
	n := 0
	for _, r := range label {
		if r < 'A' || r > 'Z' {
			return 0
		}
		n = n*26 + int(r-'A') + 1
	}
	return n
}

// BoxType describes a grid layout. Length counts columns and height counts rows.
type BoxType struct {
	bun.BaseModel `bun:"box_types,alias:bxt"`

	BoxTypeID      int64      `bun:",pk,autoincrement" json:"id"`
	Name           string     `bun:",notnull" json:"name"`
	Description    string     `bun:",notnull,default:''" json:"description"`
	Length         int        `bun:",notnull,default:2" json:"length"`
	Height         int        `bun:",notnull,default:2" json:"height"`
	LengthLabel    LabelStyle `bun:",notnull,default:'numeric'" json:"lengthLabel"`
	HeightLabel    LabelStyle `bun:",notnull,default:'numeric'" json:"heightLabel"`
	LengthInverted bool       `bun:",notnull,default:false" json:"lengthInverted"`
	HeightInverted bool       `bun:",notnull,default:false" json:"heightInverted"`
}

func (t *BoxType) RowLabel(row int) string {
	return t.HeightLabel.Label(row, t.Height, t.HeightInverted)
}

func (t *BoxType) ColumnLabel(column int) string {
	return t.LengthLabel.Label(column, t.Length, t.LengthInverted)
}

func (t *BoxType) RowIndex(label string) (int, error) {
	return t.HeightLabel.Index(label, t.Height, t.HeightInverted)
}

func (t *BoxType) ColumnIndex(label string) (int, error) {
	return t.LengthLabel.Index(label, t.Length, t.LengthInverted)
}

type Box struct {
	bun.BaseModel `bun:"boxes,alias:box"`

	BoxID             int64  `bun:",pk,autoincrement" json:"id"`
	Name              string `bun:",notnull" json:"name"`
	Description       string `bun:",notnull,default:''" json:"description"`
	BoxTypeID         int64  `bun:",notnull" json:"boxTypeId"`
	StorageLocationID *int64 `json:"storageLocationId,omitempty"`
	ShipmentID        *int64 `json:"shipmentId,omitempty"`

	BoxType *BoxType `bun:"rel:belongs-to,join:box_type_id=box_type_id" json:"boxType,omitempty"`
}

func (b *Box) String() string {
	return b.Name
}

// BoxSlot holds one aliquot at a 1-based (row, column) position of a box.
type BoxSlot struct {
	bun.BaseModel `bun:"box_slots,alias:bxs"`

	BoxSlotID      int64 `bun:",pk,autoincrement" json:"id"`
	BoxID          int64 `bun:",notnull,unique:box_slot_position" json:"boxId"`
	RowPosition    int   `bun:",notnull,unique:box_slot_position" json:"row"`
	ColumnPosition int   `bun:",notnull,unique:box_slot_position" json:"column"`
	AliquotID      int64 `bun:",notnull,unique" json:"aliquotId"`

	Aliquot *Aliquot `bun:"rel:belongs-to,join:aliquot_id=aliquot_id" json:"content,omitempty"`
}
