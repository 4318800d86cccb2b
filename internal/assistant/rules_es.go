package assistant

var spanishBudgetSuggestions = []string{"Menos de 5000", "Menos de 10000", "Menos de 15000", "Ver todas las habitaciones"}

var spanishYes = []string{"sí", "si", "claro", "vale", "dale", "ok", "por favor", "adelante", "explícame", "explicame"}

func spanishRules() []Rule {
	return []Rule{
		{
			ID:      IntentBudget,
			Trigger: budget("menos de", "hasta", "presupuesto", "máximo", "maximo", "por debajo de", "como mucho", "under"),
			Template: "Buscando habitaciones de hasta **{amount}/mes**.\n" +
				"Abre **Buscar**, fija el precio máximo en {amount} y te mostraré los anuncios que encajan. " +
				"También puedes filtrar por ciudad, tipo de habitación o servicios.",
			Suggestions: spanishBudgetSuggestions,
		},
		{
			ID:      IntentGreeting,
			Trigger: phrases("hola", "buenos días", "buenos dias", "buenas tardes", "buenas noches", "buenas", "saludos"),
			Template: "¡Hola! Soy tu **asistente de alquiler**.\n" +
				"Puedo ayudarte a encontrar habitación, consultar precios, gestionar reservas o publicar tu propiedad. ¿Qué estás buscando?",
			Suggestions: []string{"Buscar habitación", "Habitaciones por menos de 10000", "¿Cómo reservo?", "Publicar mi propiedad"},
		},
		{
			ID: IntentListing,
			Trigger: either(prefixes("publica", "anunci", "propietari", "arrendador"),
				phrases("mi propiedad", "mi anuncio", "mis anuncios", "alquilar mi")),
			Template: "Para publicar una propiedad, inicia sesión como **propietario** y abre **Mis anuncios → Nuevo anuncio**.\n" +
				"Añade fotos, renta, depósito y servicios. Los anuncios se publican tras una revisión rápida. ¿Quieres ver los planes de publicación?",
			Suggestions: []string{"Planes de publicación", "Nuevo anuncio", "Editar mi anuncio"},
		},
		{
			ID:      IntentCancellation,
			Trigger: either(prefixes("cancel", "reembols"), phrases("devolución", "devolucion")),
			Template: "Puedes cancelar desde **Mis reservas** antes de la fecha de entrada.\n" +
				"Los reembolsos siguen la política de cancelación del anuncio y llegan a tu método de pago original en 5-7 días hábiles. ¿Necesitas ayuda con alguna reserva?",
			Suggestions: []string{"Política de cancelación", "Estado de mi reembolso", "Contactar soporte"},
		},
		{
			ID:      IntentBooking,
			Trigger: either(prefixes("reserv"), phrases("agendar visita", "visita", "visitar", "reservo")),
			Template: "Reservar tiene tres pasos:\n" +
				"1. Abre un anuncio y elige tu **fecha de entrada**\n" +
				"2. Envía una solicitud de reserva al propietario\n" +
				"3. Paga la señal cuando acepten tu solicitud\n" +
				"¿Te explico el proceso?",
			Suggestions: []string{"Sí, explícame", "Formas de pago", "Cancelar una reserva"},
		},
		{
			ID:      IntentPayment,
			Trigger: either(prefixes("pag"), phrases("tarjeta", "factura", "recibo", "depósito", "deposito")),
			Template: "Aceptamos **tarjeta**, transferencia y **UPI**.\n" +
				"La señal se guarda de forma segura hasta tu entrada. Los recibos están en **Mis reservas**.",
			Suggestions: []string{"¿Es seguro pagar?", "Obtener recibo", "Estado de mi reembolso"},
		},
		{
			ID:      IntentSubscription,
			Trigger: either(prefixes("suscri", "membres"), phrases("premium", "plan", "planes")),
			Template: "Los propietarios pueden elegir el plan **Básico** o **Premium**.\n" +
				"Los anuncios Premium aparecen primero en las búsquedas y llevan insignia de verificado. Los planes son mensuales y se pueden cancelar cuando quieras.",
			Suggestions: []string{"Comparar planes", "Pasar a Premium", "Publicar mi propiedad"},
		},
		{
			ID: IntentContact,
			Trigger: either(prefixes("contact", "llam", "mensaj"),
				phrases("teléfono", "telefono", "dueño", "dueno", "hablar con", "correo", "whatsapp")),
			Template: "Abre el anuncio y toca **Escribir al propietario** para iniciar un chat.\n" +
				"El teléfono se comparte cuando se acepta una solicitud de reserva.",
			Suggestions: []string{"Mis mensajes", "¿Cómo reservo?", "Denunciar un anuncio"},
		},
		{
			ID:          IntentReviews,
			Trigger:     prefixes("reseñ", "resen", "opinion", "opinión", "valoraci", "calificaci"),
			Template:    "Las reseñas de inquilinos verificados aparecen en cada anuncio. Puedes valorar tu estancia desde **Mis reservas** después de la fecha de entrada.",
			Suggestions: []string{"Escribir una reseña", "Habitaciones mejor valoradas"},
		},
		{
			ID: IntentSearch,
			Trigger: either(prefixes("habitaci", "cuarto", "alojamiento", "residencia", "apartamento", "departamento", "busc", "encontr"),
				phrases("piso", "pisos", "cerca", "cerca de")),
			Template: "¡Vamos a encontrarte un lugar! Usa **Buscar** para filtrar por ciudad, presupuesto, tipo de habitación y servicios.\n" +
				"Dime tu presupuesto, por ejemplo \"menos de 10000\", y te sugeriré un filtro de precio.",
			Suggestions: []string{"Habitaciones por menos de 5000", "Habitaciones por menos de 10000", "Habitaciones compartidas", "Cerca de mi universidad"},
		},
		{
			ID:      IntentPricing,
			Trigger: phrases("precio", "precios", "cuánto", "cuanto", "cuesta", "alquiler", "renta", "barato", "barata", "costo", "coste"),
			Template: "El alquiler depende de la ciudad y el tipo de habitación. La mayoría de habitaciones compartidas cuestan entre **₹4,000** y **₹12,000** al mes.\n" +
				"¿Cuál es tu presupuesto?",
			Suggestions: spanishBudgetSuggestions,
		},
		{
			ID:          IntentHelp,
			Trigger:     either(prefixes("ayud"), phrases("soporte", "problema", "queja", "denunciar", "qué puedes hacer", "que puedes hacer")),
			Template:    "Puedo ayudarte con **búsqueda de habitaciones**, **reservas**, **pagos**, **mensajes** y **publicar una propiedad**. ¿Qué necesitas?",
			Suggestions: []string{"Buscar habitación", "Mis reservas", "Ayuda con pagos", "Contactar soporte"},
		},
		{
			ID:          IntentThanks,
			Trigger:     phrases("gracias", "muchas gracias", "genial", "perfecto"),
			Template:    "¡De nada! ¿Puedo ayudarte en algo más?",
			Suggestions: []string{"Buscar habitación", "Mis reservas"},
		},
		{
			ID:          IntentGoodbye,
			Trigger:     phrases("adiós", "adios", "chao", "hasta luego", "nos vemos"),
			Template:    "¡Adiós! Mucha suerte encontrando tu nuevo hogar.",
			Suggestions: []string{},
		},
		{
			ID:          IntentConfirmSearch,
			Contextual:  true,
			Trigger:     replyTo(searchFollowUps, spanishYes...),
			Template:    "¡Genial! Abre **Buscar**, elige tu ciudad y fija un presupuesto. Toca cualquier anuncio para ver fotos, servicios y reseñas.",
			Suggestions: spanishBudgetSuggestions,
		},
		{
			ID:         IntentConfirmBooking,
			Contextual: true,
			Trigger:    replyTo(bookingFollowUps, spanishYes...),
			Template: "Así se hace:\n" +
				"1. Abre el anuncio y toca **Solicitar reserva**\n" +
				"2. Elige la fecha de entrada y la duración\n" +
				"3. Cuando el propietario acepte, paga la señal",
			Suggestions: []string{"Formas de pago", "Política de cancelación"},
		},
		{
			ID:          IntentConfirmListing,
			Contextual:  true,
			Trigger:     replyTo(listingFollowUps, spanishYes...),
			Template:    "El plan **Básico** publica una propiedad gratis. **Premium** añade posición prioritaria, insignia de verificado y anuncios ilimitados.",
			Suggestions: []string{"Pasar a Premium", "Nuevo anuncio"},
		},
		{
			ID:          IntentDecline,
			Contextual:  true,
			Trigger:     replyTo(nil, "no", "ahora no", "más tarde", "mas tarde"),
			Template:    "Sin problema. Avísame cuando necesites algo.",
			Suggestions: []string{"Buscar habitación", "Ayuda"},
		},
		{
			ID: FallbackRuleID,
			Template: "Perdona, no lo he entendido. Puedo ayudarte con **habitaciones**, **precios**, **reservas**, **pagos** y **publicar una propiedad**.\n" +
				"Prueba una de las sugerencias.",
			Suggestions: []string{"Buscar habitación", "Habitaciones por menos de 10000", "¿Cómo reservo?", "Ayuda"},
		},
	}
}
