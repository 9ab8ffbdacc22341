package engine

import (
	"fmt"
	"time"
)

const reportDateFormat = "2/1/2006"

// 报告区块标识
const (
	SectionHeader       = "header"
	SectionIdeation     = "ideation"
	SectionBehavior     = "behavior"
	SectionFinalRemarks = "finalRemarks"
)

// 占位文本
const (
	PlaceholderNone            = "Ninguna"
	PlaceholderNotAvailable    = "N/A"
	PlaceholderIdeationDetail  = "No se aplicaron preguntas de ideación detallada ya que no se reportaron pensamientos suicidas activos no específicos."
	PlaceholderBehavior        = "No se aplicaron preguntas de comportamiento suicida ya que la ideación suicida activa o el deseo de muerte fueron positivos."
	PlaceholderNoFinalRemarks  = "No hay observaciones finales."
	noDetailedDescriptionLabel = "Sí (sin descripción detallada)"
)

var frequencyText = map[int]string{
	0: "No sabe/No corresponde",
	1: "Solo una vez",
	2: "Unas pocas veces",
	3: "Muchas",
	4: "Todo el tiempo",
}

// Participants 报告抬头中的身份信息，由调用方从学生和心理师记录中取得
type Participants struct {
	StudentName       string `json:"studentName"`
	StudentEmail      string `json:"studentEmail"`
	PsychologistName  string `json:"psychologistName"`
	PsychologistEmail string `json:"psychologistEmail"`
}

// Item 报告中的一行。Field 是该行展示的问卷字段路径，占位行和抬头行为空
type Item struct {
	Field       string `json:"field,omitempty"`
	Label       string `json:"label"`
	Value       string `json:"value"`
	Detail      bool   `json:"detail,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Section 报告区块
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// HasContent 区块中是否有非占位内容
func (s Section) HasContent() bool {
	for _, it := range s.Items {
		if !it.Placeholder {
			return true
		}
	}
	return false
}

// Project 生成有序的报告区块。区块取舍与 Validate 使用同一组分支谓词
func Project(s ScoredAssessment, p Participants) ([]Section, error) {
	if !s.valid.verified || s.risk == "" {
		return nil, ErrInvariantViolation
	}
	a := s.valid.a
	flags := a.Flags()

	return []Section{
		headerSection(a, s.risk, p),
		ideationSection(a, flags),
		behaviorSection(a, flags),
		finalRemarksSection(a),
	}, nil
}

func headerSection(a Assessment, risk RiskLevel, p Participants) Section {
	items := []Item{
		{Label: "Estudiante", Value: orNA(p.StudentName)},
		{Label: "Correo Estudiante", Value: orNA(p.StudentEmail)},
		{Label: "Psicólogo", Value: orNA(p.PsychologistName)},
		{Label: "Correo Psicólogo", Value: orNA(p.PsychologistEmail)},
		{Label: "Fecha de Evaluación", Value: formatDate(a.Date)},
		{Label: "Nivel de Riesgo Calculado", Value: string(risk)},
	}
	if a.Observations != "" {
		items = append(items, Item{Field: "observations", Label: "Observaciones Generales de la Evaluación", Value: a.Observations})
	} else {
		items = append(items, Item{Label: "Observaciones Generales de la Evaluación", Value: PlaceholderNone, Placeholder: true})
	}
	return Section{Key: SectionHeader, Title: "Detalles de Evaluación de Riesgo Suicida", Items: items}
}

func ideationSection(a Assessment, flags BaseFlags) Section {
	var items []Item
	items = append(items, indicatorItems("deathWish", "Deseo de Muerte", a.DeathWish)...)
	items = append(items, indicatorItems("nonSpecificActiveSuicidalThoughts", "Pensamientos Suicidas Activos No Específicos", a.NonSpecificActiveSuicidalThoughts)...)

	if !IsIdeationDetailActive(flags) {
		items = append(items, Item{Label: "Ideación detallada", Value: PlaceholderIdeationDetail, Placeholder: true})
		return Section{Key: SectionIdeation, Title: "1. Ideación Suicida", Items: items}
	}

	items = append(items, indicatorItems("activeSuicidalIdeationWithMethods", "Ideación Suicida Activa con Métodos", a.ActiveSuicidalIdeationWithMethods)...)
	items = append(items, indicatorItems("activeSuicidalIdeationWithIntent", "Ideación Suicida Activa con Intención", a.ActiveSuicidalIdeationWithIntent)...)

	plan := a.ActiveSuicidalIdeationWithPlan
	items = append(items, Item{Field: "activeSuicidalIdeationWithPlan.present", Label: "Ideación Suicida Activa con Plan", Value: yesNo(plan.Present)})
	if plan.Present {
		if plan.Description != "" {
			items = append(items, Item{Field: "activeSuicidalIdeationWithPlan.description", Label: "Descripción del Plan", Value: plan.Description, Detail: true})
		}
		items = append(items, Item{Field: "activeSuicidalIdeationWithPlan.frequency", Label: "Frecuencia del Plan", Value: fmt.Sprintf("%d", plan.Frequency), Detail: true})
	}

	if in := a.IdeationIntensity; in != nil {
		items = append(items,
			Item{Field: "ideationIntensity.mostSeriousIdeationType", Label: "Tipo de Ideación más Grave", Value: fmt.Sprintf("%d", in.MostSeriousIdeationType), Detail: true},
			Item{Field: "ideationIntensity.mostSeriousIdeationDescription", Label: "Descripción de Ideación más Grave", Value: orNA(in.MostSeriousIdeationDescription), Detail: true},
			Item{Field: "ideationIntensity.frequency", Label: "Frecuencia de la Ideación", Value: frequencyLabel(in.Frequency), Detail: true},
		)
	}
	return Section{Key: SectionIdeation, Title: "1. Ideación Suicida", Items: items}
}

func behaviorSection(a Assessment, flags BaseFlags) Section {
	if !IsBehaviorBranchActive(flags) {
		return Section{
			Key:   SectionBehavior,
			Title: "2. Comportamiento Suicida",
			Items: []Item{{Label: "Comportamiento suicida", Value: PlaceholderBehavior, Placeholder: true}},
		}
	}

	var items []Item
	items = append(items, attemptItems("actualAttempt", "Intento de Suicidio Actual", "Total de Intentos", a.ActualAttempt)...)
	items = append(items, indicatorItems("nonSuicidalSelfInjury", "Autolesión No Suicida", a.NonSuicidalSelfInjury)...)
	items = append(items, indicatorItems("unknownIntentSelfInjury", "Autolesión con Intención Desconocida", a.UnknownIntentSelfInjury)...)
	items = append(items, attemptItems("interruptedAttempt", "Intento Interrumpido", "Total de Intentos Interrumpidos", a.InterruptedAttempt)...)
	items = append(items, attemptItems("abortedAttempt", "Intento Abortado", "Total de Intentos Abortados", a.AbortedAttempt)...)
	items = append(items, indicatorItems("preparatoryActs", "Actos Preparatorios", a.PreparatoryActs)...)

	lethalDate := PlaceholderNotAvailable
	if a.MostLethalAttemptDate != nil {
		lethalDate = formatDate(*a.MostLethalAttemptDate)
	}
	potential := PlaceholderNotAvailable
	if a.PotentialLethality != nil {
		potential = fmt.Sprintf("%d", *a.PotentialLethality)
	}

	items = append(items,
		Item{Field: "completedSuicide", Label: "Suicidio Completado", Value: yesNo(a.CompletedSuicide)},
		Item{Field: "mostLethalAttemptDate", Label: "Fecha del Intento más Letal", Value: lethalDate},
		Item{Field: "lethalityDegree", Label: "Grado de Letalidad", Value: fmt.Sprintf("%d (Escala 0-5)", a.LethalityDegree)},
		Item{Field: "potentialLethality", Label: "Letalidad Potencial", Value: potential + " (Escala 0-2)"},
	)
	return Section{Key: SectionBehavior, Title: "2. Comportamiento Suicida", Items: items}
}

func finalRemarksSection(a Assessment) Section {
	item := Item{Field: "finalRemarks", Label: "Observaciones finales", Value: a.FinalRemarks}
	if a.FinalRemarks == "" {
		item = Item{Label: "Observaciones finales", Value: PlaceholderNoFinalRemarks, Placeholder: true}
	}
	return Section{Key: SectionFinalRemarks, Title: "Observaciones Finales de la Evaluación", Items: []Item{item}}
}

func indicatorItems(field, label string, ind Indicator) []Item {
	items := []Item{{Field: field + ".present", Label: label, Value: presentValue(ind)}}
	if ind.Present && ind.Description != "" {
		items = append(items, Item{Field: field + ".description", Label: "Descripción", Value: ind.Description, Detail: true})
	}
	return items
}

func attemptItems(field, label, countLabel string, ind Indicator) []Item {
	items := indicatorItems(field, label, ind)
	if ind.Present {
		items = append(items, Item{Field: field + ".totalAttempts", Label: countLabel, Value: fmt.Sprintf("%d", ind.TotalAttempts), Detail: true})
	}
	return items
}

func presentValue(ind Indicator) string {
	if !ind.Present {
		return "No"
	}
	if ind.Description == "" {
		return noDetailedDescriptionLabel
	}
	return "Sí"
}

func frequencyLabel(f int) string {
	if t, ok := frequencyText[f]; ok {
		return t
	}
	return PlaceholderNotAvailable
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func orNA(s string) string {
	if s == "" {
		return PlaceholderNotAvailable
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return PlaceholderNotAvailable
	}
	return t.Format(reportDateFormat)
}
