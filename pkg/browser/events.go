package browser

import "sort"

// LoginEvents builds the events of a generic login: open the page, type the
// credentials, submit the form
func LoginEvents(url, userSelector, passSelector, submitSelector, username, password string) []RecordedEvent {
	return []RecordedEvent{
		{Action: ActionNavigate, Href: url},
		{Action: ActionChange, TagName: TagInput, Selector: userSelector, Value: TextValue(username)},
		{Action: ActionChange, TagName: TagInput, Selector: passSelector, Value: TextValue(password)},
		{Action: ActionClick, Selector: submitSelector},
	}
}

// FormFillEvents builds one input change per form field, ordered by selector
func FormFillEvents(formData map[string]string) []RecordedEvent {
	selectors := make([]string, 0, len(formData))
	for selector := range formData {
		selectors = append(selectors, selector)
	}
	sort.Strings(selectors)

	events := make([]RecordedEvent, 0, len(formData))
	for _, selector := range selectors {
		events = append(events, RecordedEvent{
			Action:   ActionChange,
			TagName:  TagInput,
			Selector: selector,
			Value:    TextValue(formData[selector]),
		})
	}
	return events
}
