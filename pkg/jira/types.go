package jira

// Project identifies the target project by key.
type Project struct {
	Key string `json:"key"`
}

// NamedField is a Jira field addressed by name (issue type, component,
// priority).
type NamedField struct {
	Name string `json:"name"`
}

// ValueField is a Jira select custom field addressed by value.
type ValueField struct {
	Value string `json:"value"`
}

// AccountField assigns a user by Jira Cloud account id.
type AccountField struct {
	AccountID string `json:"accountId"`
}

// IssueFields is the fields section of an issue creation request.
type IssueFields struct {
	Project      Project       `json:"project"`
	Summary      string        `json:"summary"`
	Description  string        `json:"description"`
	IssueType    NamedField    `json:"issuetype"`
	Labels       []string      `json:"labels,omitempty"`
	Components   []NamedField  `json:"components,omitempty"`
	Priority     *NamedField   `json:"priority,omitempty"`
	Assignee     *AccountField `json:"assignee,omitempty"`
	TeamCategory *ValueField   `json:"customfield_12544,omitempty"`
}

// createIssueRequest is the body for POST /rest/api/2/issue.
type createIssueRequest struct {
	Fields IssueFields `json:"fields"`
}

// CreatedIssue is the API response for a created issue.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// User is a Jira user search result.
type User struct {
	AccountID    string `json:"accountId"`
	EmailAddress string `json:"emailAddress,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// apiError is the standard Jira error body.
type apiError struct {
	ErrorMessages []string          `json:"errorMessages,omitempty"`
	Errors        map[string]string `json:"errors,omitempty"`
}
