package entity

import "strconv"

// Nombres de los namespaces de consecutivos.
const (
	SeqInvoice         = "invoice"
	SeqSupplierInvoice = "supplierInvoice"
	SeqCustomerReturn  = "customerReturn"
	SeqSupplierReturn  = "supplierReturn"
)

// SequenceNamespace define un flujo independiente de numeración de documentos:
// piso de arranque, techo opcional con reinicio al piso, y sufijo del formato
// impreso. El valor actual vive en el record store; esto es solo la definición.
type SequenceNamespace struct {
	Name    string `json:"name"`
	Floor   int64  `json:"floor"`   // el primer número emitido es Floor+1
	Ceiling int64  `json:"ceiling"` // 0 = sin techo; al superarlo se reinicia al piso
	Suffix  string `json:"suffix"`  // "", "-S", "-R", "-SR"
}

// Format devuelve el número con el formato humano del namespace.
func (ns SequenceNamespace) Format(value int64) string {
	return strconv.FormatInt(value, 10) + ns.Suffix
}

// DefaultNamespaces son los cuatro flujos del punto de venta. El techo de
// facturas mantiene el número acotado para el formato impreso, a costa de
// reutilización eventual tras el reinicio.
func DefaultNamespaces(invoiceFloor, invoiceCeiling int64) map[string]SequenceNamespace {
	return map[string]SequenceNamespace{
		SeqInvoice:         {Name: SeqInvoice, Floor: invoiceFloor, Ceiling: invoiceCeiling, Suffix: ""},
		SeqSupplierInvoice: {Name: SeqSupplierInvoice, Floor: 999, Suffix: "-S"},
		SeqCustomerReturn:  {Name: SeqCustomerReturn, Floor: 999, Suffix: "-R"},
		SeqSupplierReturn:  {Name: SeqSupplierReturn, Floor: 999, Suffix: "-SR"},
	}
}
