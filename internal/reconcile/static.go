package reconcile

// Guidance is the fixed content of the provider-reported failed and
// pending outcome pages. These pages never consult the backend.
type Guidance struct {
	Title string
	Body  string
	Tips  []string
}

// FailedGuidance is shown when Mercado Pago redirects to the failure path.
func FailedGuidance() Guidance {
	return Guidance{
		Title: "Pago No Procesado",
		Body: "El pago no pudo ser completado. Esto puede ocurrir por fondos insuficientes, " +
			"datos incorrectos, o una cancelación.",
		Tips: []string{
			"Verificar que los datos de tu tarjeta sean correctos",
			"Comprobar que tenés fondos suficientes",
			"Probar con otro método de pago",
			"Contactar a tu banco si el problema persiste",
		},
	}
}

// PendingGuidance is shown when Mercado Pago redirects to the pending path.
func PendingGuidance() Guidance {
	return Guidance{
		Title: "Pago Pendiente",
		Body: "Tu pago está siendo procesado. Esto puede tomar entre 1-2 días hábiles " +
			"dependiendo del método de pago elegido.",
		Tips: []string{
			"Una vez que se confirme el pago, recibirás un email con el link de descarga",
		},
	}
}
