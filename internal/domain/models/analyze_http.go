package models

type AnalyzeRequest struct {
	Query    string `param:"query" json:"query" validate:"required,min=1,max=80"`
	Extended bool   `query:"extended" json:"extended" default:"false"`
}
