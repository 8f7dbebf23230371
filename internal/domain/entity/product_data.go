package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// EntryDateLayout formato de la fecha de entrada (sólo fecha, sin hora).
const EntryDateLayout = "2006-01-02"

// Tipos de almacenamiento opcionales.
const (
	StorageTypeBulk   = "granel"
	StorageTypePallet = "palete"
)

// ProductData datos del producto que ocupa una posición o un palé kanban.
// Quantity admite decimales, pero nunca menor que 1.
type ProductData struct {
	ProductName  string
	ProductCode  string
	ClientName   string
	Quantity     decimal.Decimal
	StorageType  string
	EntryDate    string
	Address      string
	Observations string
}

// Límites de la cantidad: los mismos que la columna NUMERIC(18,4) en todos los backends.
const (
	QuantityMaxIntDigits = 14
	QuantityMaxDecimals  = 4
)

var (
	minQuantity = decimal.NewFromInt(1)
	maxQuantity = decimal.New(1, QuantityMaxIntDigits) // exclusivo
)

// Validate revisa los campos obligatorios y devuelve *domain.ValidationError con
// todos los campos inválidos, o nil.
func (p ProductData) Validate() error {
	v := &domain.ValidationError{}
	validateName(v, "productName", p.ProductName)
	validateName(v, "productCode", p.ProductCode)
	validateQuantity(v, p.Quantity)
	validateEntryDate(v, p.EntryDate)
	validateStorageType(v, p.StorageType)
	return v.OrNil()
}

// Normalize recorta espacios de los campos de texto.
func (p ProductData) Normalize() ProductData {
	p.ProductName = strings.TrimSpace(p.ProductName)
	p.ProductCode = strings.TrimSpace(p.ProductCode)
	p.ClientName = strings.TrimSpace(p.ClientName)
	p.StorageType = strings.TrimSpace(p.StorageType)
	p.EntryDate = strings.TrimSpace(p.EntryDate)
	p.Address = strings.TrimSpace(p.Address)
	return p
}

func validateName(v *domain.ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "es obligatorio")
	}
}

func validateQuantity(v *domain.ValidationError, q decimal.Decimal) {
	// El exponente se revisa antes de comparar: comparar reescala el coeficiente.
	exp := q.Exponent()
	switch {
	case exp > QuantityMaxIntDigits:
		v.Add("quantity", fmt.Sprintf("debe ser menor que 10^%d", QuantityMaxIntDigits))
	case exp < -4*QuantityMaxIntDigits:
		v.Add("quantity", fmt.Sprintf("admite como máximo %d decimales", QuantityMaxDecimals))
	case q.LessThan(minQuantity):
		v.Add("quantity", "debe ser mayor o igual a 1")
	case q.GreaterThanOrEqual(maxQuantity):
		v.Add("quantity", fmt.Sprintf("debe ser menor que 10^%d", QuantityMaxIntDigits))
	case !q.Equal(q.Truncate(QuantityMaxDecimals)):
		v.Add("quantity", fmt.Sprintf("admite como máximo %d decimales", QuantityMaxDecimals))
	}
}

func validateEntryDate(v *domain.ValidationError, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add("entryDate", "es obligatorio")
		return
	}
	if _, err := time.Parse(EntryDateLayout, value); err != nil {
		v.Add("entryDate", "formato esperado YYYY-MM-DD")
	}
}

func validateStorageType(v *domain.ValidationError, value string) {
	switch strings.TrimSpace(value) {
	case "", StorageTypeBulk, StorageTypePallet:
	default:
		v.Add("storageType", "debe ser granel o palete")
	}
}
