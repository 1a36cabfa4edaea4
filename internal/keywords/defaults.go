package keywords

// DefaultKeywords is the built-in technology vocabulary. Duplicated
// keywords are collapsed by NewDetector.
var DefaultKeywords = []string{
	// Programming & scripting
	"python", "java", "c++", "c#", "javascript", "typescript", "powershell", "bash", "shell", "sql",
	"nosql", "mongodb", "mysql", "postgresql", "go", "ruby", "perl", "php", "swift", "objective-c",
	"scala", "r",
	// Cloud platforms
	"aws", "amazon web services", "azure", "microsoft azure", "gcp", "google cloud", "cloud",
	"cloud computing",
	// Microsoft technologies
	"office 365", "microsoft 365", "exchange", "sharepoint", "onedrive", "teams", "intune",
	"active directory", "windows server", "windows 10", "windows 11", "microsoft defender",
	"microsoft endpoint manager", "microsoft sql server", "outlook", "visio", "power bi", "powerapps",
	"microsoft dynamics", "microsoft edge", "system center", "sccm", "azure ad", "azure devops",
	"azure functions", "azure logic apps", "azure storage", "azure virtual machines",
	"azure networking", "azure backup", "azure site recovery", "azure monitor",
	"azure security center", "azure policy", "azure automation", "azure app service",
	"azure kubernetes service",
	// Virtualization & infrastructure
	"vmware", "hyper-v", "virtualization", "citrix", "remote desktop", "rdp", "vpn", "firewall",
	"networking", "dns", "dhcp", "tcp/ip", "lan", "wan", "switch", "router", "load balancer",
	"network printer", "firmware",
	// Security
	"security", "cybersecurity", "endpoint protection", "antivirus", "mdr", "siem", "sentinelone",
	"huntress", "threatlocker", "socs 2", "soc 2", "compliance", "encryption",
	"multi-factor authentication", "mfa", "email security", "dns filter", "vulnerability scanner",
	"av", "vpn", "ssl", "tls", "zero trust",
	// DevOps & automation
	"devops", "jenkins", "terraform", "ansible", "docker", "kubernetes", "automation", "scripting",
	"ci/cd", "gitlab", "github actions", "octopus deploy", "configuration management",
	// Data & analytics
	"data science", "machine learning", "deep learning", "pandas", "numpy", "scikit-learn",
	"tensorflow", "pytorch", "spark", "hadoop", "tableau", "reporting", "analytics", "etl",
	"data warehouse", "bigquery", "databricks", "power bi", "business intelligence",
	// Web & frontend
	"react", "node.js", "angular", "html", "css", "sass", "graphql", "rest", "api", "bootstrap",
	"vue.js",
	// MSP tools & platforms
	"rmm", "psa", "connectwise", "autotask", "datto", "pax8", "halo", "missive", "ticketing",
	"remote monitoring", "backup", "disaster recovery", "business continuity", "sla", "service desk",
	"help desk", "solarwinds", "manage engine", "ninjaone", "kaseya", "logicmonitor", "auvik",
	"itglue", "documentation", "monitoring",
	// Other
	"linux", "macos", "apple", "android", "ios", "virtual machine", "network printer", "firmware",
	"dns filter", "salesforce", "zendesk", "servicenow", "jira", "confluence", "slack", "teams",
	"zoom", "webex",
}

// DefaultRules returns rules for DefaultKeywords.
func DefaultRules() []Rule {
	return FromKeywords(DefaultKeywords)
}
