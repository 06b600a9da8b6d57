package records

// Candidate header lists for the logical fields read from the sheets, in
// lookup order.
var (
	NameAliases      = []string{"nombre", "name"}
	BirthdateAliases = []string{"fecha", "fecha_de_nacimiento", "fecha de nacimiento", "nacimiento", "cumpleaños"}

	StartAliases    = []string{"empieza", "fecha_de_inicio", "fecha_inicio"}
	EndAliases      = []string{"termina", "fecha_de_fin", "fecha_fin"}
	TitleAliases    = []string{"actividad", "tipo_de_actividad", "tipo", "Tipo de actividad"}
	PlaceAliases    = []string{"lugar", "Lugar"}
	PriestAliases   = []string{"sacerdote", "predicador", "Predicador"}
	DirectorAliases = []string{"director", "Director"}
	SignUpAliases   = []string{"inscripción", "inscripcion", "link_inscripcion", "link"}

	DayAliases     = []string{"día", "dia", "Día"}
	HourAliases    = []string{"hora", "Hora"}
	ManagerAliases = []string{"encargado", "Encargado"}
)
