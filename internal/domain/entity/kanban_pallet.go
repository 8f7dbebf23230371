package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Etapas del kanban de expedición.
const (
	StageGreen  = "green"  // listo
	StageYellow = "yellow" // pendiente
	StageRed    = "red"    // urgente
)

// Stages en el orden sugerido green → yellow → red.
var Stages = [...]string{StageGreen, StageYellow, StageRed}

var stageLabels = map[string]string{
	StageGreen:  "Kanban Green",
	StageYellow: "Kanban Yellow",
	StageRed:    "Kanban Red",
}

// ValidStage indica si s es una de las tres etapas.
func ValidStage(s string) bool {
	_, ok := stageLabels[s]
	return ok
}

// StageLabel etiqueta legible de la etapa, usada como ubicación en el histórico.
func StageLabel(stage string) string {
	if l, ok := stageLabels[stage]; ok {
		return l
	}
	return "Kanban " + stage
}

// KanbanPallet palé en la cola de expedición.
type KanbanPallet struct {
	ID        string
	Stage     string
	Product   ProductData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone copia el palé.
func (k *KanbanPallet) Clone() *KanbanPallet {
	if k == nil {
		return nil
	}
	cp := *k
	return &cp
}

// PalletPatch cambios parciales sobre un palé; nil significa "no cambia".
type PalletPatch struct {
	Stage        *string
	ProductName  *string
	ProductCode  *string
	ClientName   *string
	Quantity     *decimal.Decimal
	StorageType  *string
	EntryDate    *string
	Address      *string
	Observations *string
}

// HasProductChanges indica si el patch modifica algún campo que no sea la etapa.
func (p PalletPatch) HasProductChanges() bool {
	return p.ProductName != nil || p.ProductCode != nil || p.ClientName != nil ||
		p.Quantity != nil || p.StorageType != nil || p.EntryDate != nil ||
		p.Address != nil || p.Observations != nil
}

// Validate revisa sólo los campos presentes.
func (p PalletPatch) Validate() error {
	v := &domain.ValidationError{}
	if p.Stage != nil && !ValidStage(*p.Stage) {
		v.Add("stage", "debe ser green, yellow o red")
	}
	if p.ProductName != nil {
		validateName(v, "productName", *p.ProductName)
	}
	if p.ProductCode != nil {
		validateName(v, "productCode", *p.ProductCode)
	}
	if p.Quantity != nil {
		validateQuantity(v, *p.Quantity)
	}
	if p.EntryDate != nil {
		validateEntryDate(v, *p.EntryDate)
	}
	if p.StorageType != nil {
		validateStorageType(v, *p.StorageType)
	}
	return v.OrNil()
}

// Apply aplica los campos presentes sobre el palé.
func (p PalletPatch) Apply(k *KanbanPallet, now time.Time) {
	if p.Stage != nil {
		k.Stage = *p.Stage
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&k.Product.ProductName, p.ProductName)
	set(&k.Product.ProductCode, p.ProductCode)
	set(&k.Product.ClientName, p.ClientName)
	set(&k.Product.StorageType, p.StorageType)
	set(&k.Product.EntryDate, p.EntryDate)
	set(&k.Product.Address, p.Address)
	if p.Observations != nil {
		k.Product.Observations = *p.Observations
	}
	if p.Quantity != nil {
		k.Product.Quantity = *p.Quantity
	}
	k.UpdatedAt = now
}
