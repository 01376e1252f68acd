package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/banner/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTBANNER"
	testBannerSectionKeyConstant                   = "banner"
	testWidthKeyConstant                           = testBannerSectionKeyConstant + ".width"
	testTitleKeyConstant                           = testBannerSectionKeyConstant + ".title"
	testDefaultWidthConstant                       = "80"
	testEmbeddedWidthConstant                      = "72"
	testFileWidthConstant                          = "40"
	testEnvironmentWidthConstant                   = "20"
	testEnvironmentTitleConstant                   = "FROM ENVIRONMENT"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigContentTemplateConstant              = "banner:\n  width: %s\n"
	testCaseEmbeddedMessageConstant                = "embedded configuration merges"
	testCaseDefaultsMessageConstant                = "defaults are applied"
	testCaseFileMessageConstant                    = "config file overrides embedded"
	testCaseEnvironmentMessageConstant             = "environment overrides file"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
)

type configurationFixture struct {
	Banner bannerConfigurationFixture `mapstructure:"banner"`
}

type bannerConfigurationFixture struct {
	Width string  `mapstructure:"width"`
	Title *string `mapstructure:"title"`
}

func environmentVariableName(configurationKey string) string {
	return fmt.Sprintf("%s_%s", testEnvironmentPrefixConstant, strings.ToUpper(strings.ReplaceAll(configurationKey, ".", "_")))
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name             string
		embeddedWidth    string
		fileWidth        string
		environmentWidth string
		expectedWidth    string
	}{
		{
			name:          testCaseEmbeddedMessageConstant,
			embeddedWidth: testEmbeddedWidthConstant,
			expectedWidth: testEmbeddedWidthConstant,
		},
		{
			name:          testCaseDefaultsMessageConstant,
			expectedWidth: testDefaultWidthConstant,
		},
		{
			name:          testCaseFileMessageConstant,
			embeddedWidth: testEmbeddedWidthConstant,
			fileWidth:     testFileWidthConstant,
			expectedWidth: testFileWidthConstant,
		},
		{
			name:             testCaseEnvironmentMessageConstant,
			embeddedWidth:    testEmbeddedWidthConstant,
			fileWidth:        testFileWidthConstant,
			environmentWidth: testEnvironmentWidthConstant,
			expectedWidth:    testEnvironmentWidthConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileWidth) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileWidth)
				writeError := os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600)
				require.NoError(testInstance, writeError)
			}

			if len(testCase.environmentWidth) > 0 {
				testInstance.Setenv(environmentVariableName(testWidthKeyConstant), testCase.environmentWidth)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})
			if len(testCase.embeddedWidth) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedWidth)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{
				testWidthKeyConstant: testDefaultWidthConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedWidth, loadedConfiguration.Banner.Width)
			require.Nil(testInstance, loadedConfiguration.Banner.Title)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderBoundEnvironmentKeys(testInstance *testing.T) {
	testInstance.Setenv(environmentVariableName(testTitleKeyConstant), testEnvironmentTitleConstant)

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})
	configurationLoader.BindEnvironmentKeys(testTitleKeyConstant)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", map[string]any{testWidthKeyConstant: testDefaultWidthConstant}, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.NotNil(testInstance, loadedConfiguration.Banner.Title)
	require.Equal(testInstance, testEnvironmentTitleConstant, *loadedConfiguration.Banner.Title)
}

func TestConfigurationLoaderSearchPaths(testInstance *testing.T) {
	firstDirectoryPath := testInstance.TempDir()
	secondDirectoryPath := testInstance.TempDir()

	configurationFilePath := filepath.Join(secondDirectoryPath, testConfigFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testFileWidthConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))

	configurationLoader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{firstDirectoryPath, secondDirectoryPath},
	)

	loadedConfiguration := configurationFixture{}
	metadata, loadError := configurationLoader.LoadConfiguration("", map[string]any{testWidthKeyConstant: testDefaultWidthConstant}, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testFileWidthConstant, loadedConfiguration.Banner.Width)
	require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderMissingExplicitFile(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := configurationFixture{}
	missingFilePath := filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)
	_, loadError := configurationLoader.LoadConfiguration(missingFilePath, nil, &loadedConfiguration)
	require.Error(testInstance, loadError)
}
