package arm

import (
	"fmt"
	"net/url"
)

// ResourceGroupPath returns /subscriptions/{sub}/resourceGroups/{rg}.
func ResourceGroupPath(subscriptionID, resourceGroup string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s",
		url.PathEscape(subscriptionID), url.PathEscape(resourceGroup))
}

// APIVersion builds the api-version query used by every management call.
func APIVersion(version string) url.Values {
	return url.Values{"api-version": []string{version}}
}
