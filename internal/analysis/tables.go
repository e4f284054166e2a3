package analysis

// Artifact-type ids produced by the tools.
const (
	TagSpoofedIdentity     = "spoofed-identity"
	TagMaliciousLink       = "malicious-link"
	TagDangerousAttachment = "dangerous-attachment"
	TagSocialEngineering   = "social-engineering"
	TagUrgencyTactics      = "urgency-tactics"
	TagCredentialHarvest   = "credential-harvesting"
	TagCEOFraud            = "ceo-fraud"
	TagAdvancedPersistent  = "advanced-persistent"
	TagSupplyChainAttack   = "supply-chain-attack"
)

// Threat categories that get the detailed authentication-failure narrative.
var headerAuthFailures = map[string]bool{
	"credential-harvesting":    true,
	"fake-security-alert":      true,
	"account-takeover-attempt": true,
}

// Impersonation lures carry no link; everything else in the catalog does.
var linkTags = map[string][]string{
	"credential-harvesting":    {TagMaliciousLink},
	"urgency-tactics":          {TagMaliciousLink},
	"advanced-spear-phishing":  {TagMaliciousLink},
	"fake-security-alert":      {TagMaliciousLink},
	"account-takeover-attempt": {TagMaliciousLink},
	"sophisticated-clone":      {TagMaliciousLink},
	"fake-collaboration":       {TagMaliciousLink},
	"document-harvesting":      {TagMaliciousLink},
	"supply-chain-attack":      {TagMaliciousLink},
	"ceo-impersonation":        {TagSocialEngineering},
	"advanced-impersonation":   {TagSocialEngineering},
}

var linguisticTags = map[string][]string{
	"urgency-tactics":          {TagUrgencyTactics, TagSocialEngineering},
	"credential-harvesting":    {TagUrgencyTactics, TagSocialEngineering},
	"account-takeover-attempt": {TagUrgencyTactics, TagSocialEngineering},
	"ceo-impersonation":        {TagUrgencyTactics, TagSocialEngineering},
	"advanced-impersonation":   {TagUrgencyTactics, TagSocialEngineering},
	"advanced-spear-phishing":  {TagUrgencyTactics, TagSocialEngineering},
	"document-harvesting":      {TagUrgencyTactics, TagSocialEngineering},
	"supply-chain-attack":      {TagUrgencyTactics, TagSocialEngineering},
	"fake-security-alert":      {TagSocialEngineering},
	"sophisticated-clone":      {TagSocialEngineering},
	"fake-collaboration":       {TagSocialEngineering},
}

var timelineTags = map[string][]string{
	"urgency-tactics":          {TagUrgencyTactics},
	"account-takeover-attempt": {TagUrgencyTactics},
	"advanced-spear-phishing":  {TagAdvancedPersistent},
	"document-harvesting":      {TagAdvancedPersistent},
	"advanced-impersonation":   {TagAdvancedPersistent},
	"supply-chain-attack":      {TagSupplyChainAttack},
}

var patternTags = map[string][]string{
	"ceo-impersonation":        {TagCEOFraud},
	"credential-harvesting":    {TagCredentialHarvest},
	"advanced-spear-phishing":  {TagAdvancedPersistent},
	"fake-security-alert":      {TagSocialEngineering},
	"account-takeover-attempt": {TagCredentialHarvest},
	"urgency-tactics":          {TagUrgencyTactics},
	"supply-chain-attack":      {TagSupplyChainAttack},
	"document-harvesting":      {TagDangerousAttachment},
}

var patternNames = map[string]string{
	"ceo-impersonation":       "Business Email Compromise (BEC)",
	"credential-harvesting":   "Credential Harvesting Campaign",
	"advanced-spear-phishing": "Spear Phishing Attack",
	"fake-security-alert":     "Security Alert Impersonation",
}

var targetProfiles = map[string]string{
	"ceo-impersonation":        "Finance and accounting personnel",
	"credential-harvesting":    "General employee population",
	"advanced-spear-phishing":  "High-value targets with access to sensitive data",
	"fake-security-alert":      "Security-conscious users",
	"account-takeover-attempt": "Online banking customers",
	"urgency-tactics":          "Time-pressured workers",
}

func lookupOr(table map[string]string, key, fallback string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}
