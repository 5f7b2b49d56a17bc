package gateway

import "syncode/types"

// wireLanguage maps editor language names to what the execution backend
// expects. Only cpp differs.
var wireLanguage = map[string]string{
	"python":     "python",
	"cpp":        "c++",
	"c":          "c",
	"java":       "java",
	"javascript": "javascript",
}

// RunCode submits code for remote execution and returns its output text.
// Compiler and runtime errors reported by the execution backend come back as
// output, not as an error.
func (c *Client) RunCode(language, code string) (string, error) {
	wire, ok := wireLanguage[language]
	if !ok {
		wire = language
	}

	payload := map[string]string{
		"language": wire,
		"code":     code,
	}

	var resp struct {
		Run struct {
			Output string `json:"output"`
		} `json:"run"`
	}
	if err := c.post("/run", payload, &resp); err != nil {
		return "", err
	}
	return resp.Run.Output, nil
}

func (c *Client) ListRunHistory(userID string) ([]types.RunResult, error) {
	var history []types.RunResult
	if err := c.get("/run-history/"+userID, &history); err != nil {
		return nil, err
	}
	return history, nil
}
