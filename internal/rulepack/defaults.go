package rulepack

// Default returns the built-in rule pack for the real-estate assistant.
// Input tables catch risky requests; output tables catch risky advice.
// The two sides differ deliberately: asking about fraud and recommending
// fraud are different failure modes.
func Default() *Pack {
	return &Pack{
		Version: "1",
		Input: []Group{
			{
				Name: "harmful",
				Rules: []Rule{
					{ID: "harmful/system-attack", Tier: "critical", Pattern: `(?i)(hack|exploit|bypass|inject|sql|script|xss)`, Description: "system attack or injection keywords"},
					{ID: "harmful/credential-probing", Tier: "critical", Pattern: `(?i)(password|token|api[_\s]?key|secret)`, Description: "credential or secret probing"},
					{ID: "harmful/destructive-sql", Tier: "critical", Pattern: `(?i)(delete|drop|truncate|alter)\s+(table|database)`, Description: "destructive database statement"},
					{ID: "harmful/command-execution", Tier: "critical", Pattern: `(?i)(exec|execute|eval|system|shell|cmd)`, Description: "command execution attempt"},
					{ID: "harmful/fraud", Tier: "high", Pattern: `(?i)(fraud|scam|money\s+laundering|illegal)`, Description: "fraud or illegal-activity request"},
					{ID: "harmful/discrimination", Tier: "high", Pattern: `(?i)(discriminat\w+|racist|sexist|harassment)`, Description: "discriminatory or harassing content"},
					{ID: "harmful/personal-data", Tier: "high", Pattern: `(?i)(personal\s+information|social\s+security|credit\s+card)`, Description: "request for personal data"},
					{ID: "harmful/forged-documents", Tier: "high", Pattern: `(?i)(fake|forged|counterfeit)\s+(document|license|permit)`, Description: "forged document request"},
					{ID: "harmful/off-books-dealing", Tier: "medium", Pattern: `(?i)(off\s*the\s*books|under\s*the\s*table|cash\s*only)`, Description: "off-the-books dealing"},
					{ID: "harmful/evasion", Tier: "medium", Pattern: `(?i)(avoid|evade)\s+(tax|regulation|law)`, Description: "tax or regulation evasion"},
					{ID: "harmful/market-abuse", Tier: "medium", Pattern: `(?i)(insider\s+information|market\s+manipulation)`, Description: "insider trading or market abuse"},
					{ID: "harmful/bribery", Tier: "medium", Pattern: `(?i)(brib\w+|kickback|payoff)`, Description: "bribery or kickbacks"},
					{ID: "harmful/pressure-tactics", Tier: "low", Pattern: `(?i)(urgent|emergency|immediate|asap)\s*.{0,20}(respond|reply|answer)`, Description: "pressure for an immediate reply"},
					{ID: "harmful/repeated-demands", Tier: "low", Pattern: `(?i)repeatedly\s+.{0,10}(ask|request|demand)`, Description: "repeated demands"},
				},
			},
			{
				Name: "inappropriate",
				Rules: []Rule{
					{ID: "inappropriate/illegal-activity", Tier: "high", Pattern: `(?i)(illegal|unlawful|criminal)\s+(activity|practice|scheme)`, Description: "illegal activity or scheme"},
					{ID: "inappropriate/housing-discrimination", Tier: "high", Pattern: `(?i)(housing|rental)\s+(discrimination|bias)`, Description: "housing discrimination"},
					{ID: "inappropriate/private-data", Tier: "high", Pattern: `(?i)(personal|private)\s+.{0,10}(information|data|details)`, Description: "request for private data"},
					{ID: "inappropriate/screening-bypass", Tier: "high", Pattern: `(?i)(bypass|circumvent|avoid)\s+(screening|background\s+check)`, Description: "tenant screening bypass"},
				},
			},
			{
				Name: "spam",
				Rules: []Rule{
					{ID: "spam/character-flood", Tier: "medium", Kind: KindRepeat, MinRun: 11, Description: "long run of repeated characters"},
					{ID: "spam/call-to-action", Tier: "medium", Pattern: `(?i)(visit|click|buy|sell)\s+.{0,20}(now|today|here)`, Description: "spam call to action"},
					{ID: "spam/easy-money", Tier: "medium", Pattern: `(?i)(earn|make)\s+\$?\d+.{0,20}(quickly|fast|easy)`, Description: "easy-money pitch"},
					{ID: "spam/urgency-bait", Tier: "medium", Pattern: `(?i)(limited\s+time|act\s+now|don'?t\s+miss)`, Description: "urgency bait"},
				},
			},
		},
		Output: []Group{
			{
				Name: "unsafe",
				Rules: []Rule{
					{ID: "unsafe/guaranteed-returns", Tier: "critical", Pattern: `(?i)(guarantee|promise|certain).{0,30}(profit|return|investment)`, Description: "guaranteed investment returns"},
					{ID: "unsafe/illegal-advice", Tier: "critical", Pattern: `(?i)(illegal|unlawful|fraudulent)\s+(advice|recommendation)`, Description: "illegal or fraudulent advice"},
					{ID: "unsafe/skip-inspection", Tier: "critical", Pattern: `(?i)(no\s+inspection|skip\s+inspection|avoid\s+inspection)`, Description: "advice to skip inspection"},
					{ID: "unsafe/falsification", Tier: "critical", Pattern: `(?i)(fake|forge|falsify)\s+(document|signature|information)`, Description: "advice to falsify records"},
					{ID: "unsafe/discriminatory-advice", Tier: "high", Pattern: `(?i)(discriminat\w+|bias|prejudice)\s+.{0,20}(tenant|buyer|seller)`, Description: "discriminatory advice about parties"},
					{ID: "unsafe/conceal-defects", Tier: "high", Pattern: `(?i)(hide|conceal|omit)\s+.{0,20}(defect|problem|issue)`, Description: "advice to conceal defects"},
					{ID: "unsafe/deceive-clients", Tier: "high", Pattern: `(?i)(lie|mislead|deceive)\s+.{0,20}(client|customer|buyer)`, Description: "advice to deceive a client"},
					{ID: "unsafe/off-books-dealing", Tier: "high", Pattern: `(?i)(under\s+the\s+table|off\s+the\s+books|cash\s+deal)`, Description: "off-the-books dealing"},
					{ID: "unsafe/certain-appreciation", Tier: "medium", Pattern: `(?i)(definite|certain|guaranteed)\s+.{0,20}(appreciation|value\s+increase)`, Description: "certain-appreciation claim"},
					{ID: "unsafe/no-risk-claims", Tier: "medium", Pattern: `(?i)(can'?t\s+lose|risk\s*-?\s*free|sure\s+thing)`, Description: "risk-free claim"},
					{ID: "unsafe/out-of-domain-advice", Tier: "medium", Pattern: `(?i)(medical|health|safety)\s+.{0,20}(advice|recommendation)`, Description: "out-of-domain professional advice"},
					{ID: "unsafe/professional-advice", Tier: "medium", Pattern: `(?i)(legal|tax|financial)\s+advice`, Exclude: `(?i)(legal|tax|financial)\s+advice\s+(general|basic)`, Description: "specific legal/tax/financial advice"},
					{ID: "unsafe/pressure-to-transact", Tier: "low", Pattern: `(?i)(should|must|need\s+to)\s+(buy|sell|invest)\s+.{0,20}(now|immediately)`, Description: "pressure to transact immediately"},
					{ID: "unsafe/absolute-directives", Tier: "low", Pattern: `(?i)(always|never)\s+.{0,20}(invest|buy|sell)`, Description: "absolute investment directive"},
				},
			},
			{
				Name: "compliance",
				Rules: []Rule{
					{ID: "compliance/private-data", Tier: "high", Pattern: `(?i)(personal|private|confidential)\s+.{0,20}(information|data)`, Description: "private data disclosure"},
					{ID: "compliance/financial-identifiers", Tier: "high", Pattern: `(?i)(ssn|social\s+security|credit\s+score)`, Exclude: `(?i)(ssn|social\s+security|credit\s+score)\s+general`, Description: "financial identifier disclosure"},
					{ID: "compliance/person-location", Tier: "high", Pattern: `(?i)(exact|specific)\s+.{0,20}(address|location)\s+of\s+.{0,20}(person|individual)`, Description: "personal location disclosure"},
					{ID: "compliance/phone-number", Tier: "high", Pattern: `(?i)(contact|call|text)\s+.{0,20}\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`, Description: "phone number disclosure"},
					{ID: "compliance/email-address", Tier: "high", Pattern: `(?i)[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`, Description: "email address disclosure"},
				},
			},
			{
				Name: "misinformation",
				Rules: []Rule{
					{ID: "misinformation/certain-forecast", Tier: "medium", Pattern: `(?i)(market\s+will\s+definitely|prices\s+will\s+certainly)`, Description: "certain market forecast"},
					{ID: "misinformation/absolute-trends", Tier: "medium", Pattern: `(?i)(never|always)\s+.{0,20}(appreciate|depreciate)`, Description: "absolute price-trend claim"},
					{ID: "misinformation/conspiracy", Tier: "medium", Pattern: `(?i)(government\s+conspiracy|market\s+manipulation)`, Description: "conspiracy claim"},
					{ID: "misinformation/insider-claims", Tier: "medium", Pattern: `(?i)(insider\s+information|secret\s+knowledge)`, Description: "insider knowledge claim"},
				},
			},
		},
	}
}
