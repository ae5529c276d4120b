package importer

// Profile names the columns of one accepted CSV header layout.
type Profile struct {
	Name        string
	DateCol     string
	PlateCol    string
	CategoryCol string
	AmountCol   string
	CommentsCol string // optional
}

func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.PlateCol, p.CategoryCol, p.AmountCol}
}

// profiles is the ordered list of header layouts tried during detection.
var profiles = []Profile{
	{
		Name:        "gastos",
		DateCol:     "fecha",
		PlateCol:    "placa",
		CategoryCol: "tipo_gasto",
		AmountCol:   "monto",
		CommentsCol: "comentarios",
	},
	{
		Name:        "expenses",
		DateCol:     "date",
		PlateCol:    "plate",
		CategoryCol: "category",
		AmountCol:   "amount",
		CommentsCol: "comments",
	},
}
