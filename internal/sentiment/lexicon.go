package sentiment

// wordValence holds the polarity and subjectivity assigned to a single
// lexicon word.
type wordValence struct {
	Polarity     float64
	Subjectivity float64
}

// valenceLexicon maps lowercase words to their sentiment valence. The
// vocabulary is oriented towards financial and ESG news language. The table
// is initialized once and shared read-only across concurrent invocations.
var valenceLexicon = map[string]wordValence{
	// Positive
	"improve":      {0.5, 0.5},
	"improves":     {0.5, 0.5},
	"improved":     {0.5, 0.5},
	"improving":    {0.5, 0.5},
	"gain":         {0.4, 0.4},
	"gains":        {0.4, 0.4},
	"strong":       {0.5, 0.6},
	"strength":     {0.4, 0.5},
	"growth":       {0.3, 0.3},
	"profit":       {0.4, 0.4},
	"profitable":   {0.4, 0.4},
	"success":      {0.6, 0.6},
	"successful":   {0.6, 0.6},
	"beat":         {0.4, 0.5},
	"beats":        {0.4, 0.5},
	"upgrade":      {0.5, 0.5},
	"upgraded":     {0.5, 0.5},
	"record":       {0.3, 0.4},
	"innovative":   {0.5, 0.6},
	"innovation":   {0.5, 0.6},
	"leading":      {0.3, 0.5},
	"positive":     {0.5, 0.6},
	"good":         {0.7, 0.6},
	"great":        {0.8, 0.75},
	"excellent":    {1.0, 1.0},
	"robust":       {0.4, 0.5},
	"resilient":    {0.4, 0.5},
	"sustainable":  {0.3, 0.4},
	"efficient":    {0.4, 0.5},
	"award":        {0.4, 0.4},
	"milestone":    {0.3, 0.4},
	"expand":       {0.3, 0.3},
	"expands":      {0.3, 0.3},
	"expansion":    {0.3, 0.3},
	"invest":       {0.2, 0.3},
	"invests":      {0.2, 0.3},
	"partnership":  {0.2, 0.3},
	"commitment":   {0.2, 0.4},
	"progress":     {0.4, 0.4},
	"benefit":      {0.3, 0.4},
	"benefits":     {0.3, 0.4},
	"opportunity":  {0.3, 0.4},
	"outperform":   {0.5, 0.5},
	"outperforms":  {0.5, 0.5},
	"surge":        {0.4, 0.4},
	"surged":       {0.4, 0.4},
	"rally":        {0.4, 0.4},
	"breakthrough": {0.6, 0.6},
	"major":        {0.1, 0.3},

	// Negative
	"decline":        {-0.4, 0.4},
	"declines":       {-0.4, 0.4},
	"declined":       {-0.4, 0.4},
	"loss":           {-0.5, 0.4},
	"losses":         {-0.5, 0.4},
	"weak":           {-0.5, 0.6},
	"lawsuit":        {-0.5, 0.4},
	"scandal":        {-0.8, 0.7},
	"fraud":          {-0.8, 0.6},
	"fined":          {-0.5, 0.4},
	"penalty":        {-0.5, 0.4},
	"penalties":      {-0.5, 0.4},
	"investigation":  {-0.3, 0.3},
	"concern":        {-0.4, 0.5},
	"concerns":       {-0.4, 0.5},
	"challenge":      {-0.4, 0.5},
	"challenges":     {-0.4, 0.5},
	"risk":           {-0.2, 0.4},
	"risks":          {-0.2, 0.4},
	"miss":           {-0.4, 0.4},
	"missed":         {-0.4, 0.4},
	"downgrade":      {-0.5, 0.5},
	"downgraded":     {-0.5, 0.5},
	"fall":           {-0.3, 0.3},
	"falls":          {-0.3, 0.3},
	"fell":           {-0.3, 0.3},
	"drop":           {-0.3, 0.3},
	"dropped":        {-0.3, 0.3},
	"plunge":         {-0.6, 0.5},
	"plunged":        {-0.6, 0.5},
	"layoff":         {-0.6, 0.4},
	"layoffs":        {-0.6, 0.4},
	"violation":      {-0.6, 0.5},
	"violations":     {-0.6, 0.5},
	"pollution":      {-0.4, 0.4},
	"breach":         {-0.6, 0.5},
	"corruption":     {-0.8, 0.6},
	"negative":       {-0.5, 0.6},
	"bad":            {-0.7, 0.65},
	"poor":           {-0.6, 0.6},
	"terrible":       {-1.0, 1.0},
	"crisis":         {-0.6, 0.5},
	"bankruptcy":     {-0.8, 0.5},
	"struggle":       {-0.4, 0.5},
	"struggles":      {-0.4, 0.5},
	"warning":        {-0.3, 0.4},
	"delay":          {-0.3, 0.3},
	"delays":         {-0.3, 0.3},
	"recall":         {-0.4, 0.3},
	"accident":       {-0.5, 0.4},
	"failure":        {-0.6, 0.5},
	"greenwashing":   {-0.6, 0.6},
	"misconduct":     {-0.7, 0.5},
	"controversy":    {-0.5, 0.5},
	"controversial":  {-0.5, 0.6},
	"underperform":   {-0.5, 0.5},
	"underperforms":  {-0.5, 0.5},
	"disappointing":  {-0.6, 0.65},
	"disappointment": {-0.6, 0.65},
}

// intensifiers scale the valence of the next matched sentiment word.
var intensifiers = map[string]float64{
	"very":          1.3,
	"extremely":     1.5,
	"highly":        1.4,
	"significantly": 1.3,
	"slightly":      0.6,
	"somewhat":      0.7,
	"moderately":    0.8,
}

// negators invert and dampen the valence of the next matched sentiment word.
var negators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"without": true,
	"cannot":  true,
}

// relevanceLexicons are the per-category keyword vocabularies used for
// per-document topic relevance scoring. Matching is by case-insensitive
// substring count, so "environment" also matches inside "environmental".
var relevanceLexicons = map[string][]string{
	CategoryEnvironmental: {"climate", "carbon", "renewable", "sustainability", "green", "emissions", "environment", "pollution", "waste", "energy"},
	CategorySocial:        {"diversity", "employees", "community", "safety", "human rights", "social", "workplace", "labor", "diversity", "inclusion"},
	CategoryGovernance:    {"board", "ethics", "compliance", "transparency", "governance", "leadership", "audit", "corruption", "accountability"},
}

// keyTopicLexicons are the shorter vocabularies used when ranking key topics
// across a whole batch. They deliberately differ from relevanceLexicons: the
// ranking counts raw occurrences over the concatenated corpus, not the
// per-document normalized scores.
var keyTopicLexicons = map[string][]string{
	CategoryEnvironmental: {"climate", "carbon", "renewable", "sustainability", "green", "emissions", "environment"},
	CategorySocial:        {"diversity", "employees", "community", "safety", "human rights", "social", "workplace"},
	CategoryGovernance:    {"board", "ethics", "compliance", "transparency", "governance", "leadership", "audit"},
}
