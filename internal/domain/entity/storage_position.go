package entity

import (
	"fmt"
	"time"
)

// Geometría fija del porta-palete: 2 bloques × 5 niveles × 2 posiciones.
const (
	BlockCount     = 2
	LevelCount     = 5
	TotalPositions = BlockCount * LevelCount * 2
)

// Posiciones dentro de un nivel.
const (
	SlotAP1 = "AP1"
	SlotAP2 = "AP2"
)

// Slots en orden lexicográfico.
var Slots = [...]string{SlotAP1, SlotAP2}

// StoragePosition representa una posición física del porta-palete.
// Está ocupada si y sólo si Product no es nil.
type StoragePosition struct {
	ID        string
	Block     int
	Level     int
	Slot      string
	Product   *ProductData
	UpdatedAt time.Time
}

// PositionID arma la clave compuesta estable "pos-{bloque}-{nivel}-{slot}".
func PositionID(block, level int, slot string) string {
	return fmt.Sprintf("pos-%d-%d-%s", block, level, slot)
}

// NewEmptyPosition construye una posición vacía.
func NewEmptyPosition(block, level int, slot string, now time.Time) *StoragePosition {
	return &StoragePosition{
		ID:        PositionID(block, level, slot),
		Block:     block,
		Level:     level,
		Slot:      slot,
		UpdatedAt: now,
	}
}

// AllPositions materializa las 20 posiciones vacías en el orden de listado.
func AllPositions(now time.Time) []*StoragePosition {
	out := make([]*StoragePosition, 0, TotalPositions)
	for block := 1; block <= BlockCount; block++ {
		for level := LevelCount; level >= 1; level-- {
			for _, slot := range Slots {
				out = append(out, NewEmptyPosition(block, level, slot, now))
			}
		}
	}
	return out
}

// IsEmpty indica si la posición no tiene producto.
func (p *StoragePosition) IsEmpty() bool { return p.Product == nil }

// Location etiqueta legible usada en el histórico.
func (p *StoragePosition) Location() string {
	return fmt.Sprintf("Block %d, Level %d, %s", p.Block, p.Level, p.Slot)
}

// Fill sobrescribe todos los campos del producto.
func (p *StoragePosition) Fill(data ProductData, now time.Time) {
	d := data
	p.Product = &d
	p.UpdatedAt = now
}

// Clear descarta todos los campos del producto de una vez.
func (p *StoragePosition) Clear(now time.Time) {
	p.Product = nil
	p.UpdatedAt = now
}

// Clone copia profunda (el producto no se comparte).
func (p *StoragePosition) Clone() *StoragePosition {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Product != nil {
		d := *p.Product
		cp.Product = &d
	}
	return &cp
}

// LessPosition orden de listado: bloque ASC, nivel DESC, slot ASC.
func LessPosition(a, b *StoragePosition) bool {
	if a.Block != b.Block {
		return a.Block < b.Block
	}
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	return a.Slot < b.Slot
}
