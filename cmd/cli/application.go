package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/banner/internal/banner"
	"github.com/temirov/banner/internal/utils"
	"github.com/temirov/banner/internal/utils/flags"
)

const (
	applicationNameConstant                 = "banner"
	applicationUseConstant                  = applicationNameConstant + " [title words...]"
	applicationShortDescriptionConstant     = "Print a horizontal rule banner with an optional centered title"
	applicationLongDescriptionConstant      = "banner prints a border line, and when a title is given, the title centered between two border lines, to separate sections of console output."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagDescriptionConstant         = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagDescriptionConstant        = "Override the configured log format."
	widthFlagNameConstant                   = "width"
	widthFlagUsageConstant                  = "Total banner width in characters; values below 1 are raised to 1."
	borderCharacterFlagNameConstant         = "char"
	borderCharacterFlagUsageConstant        = "Border character; only the first character is used."
	titleFlagNameConstant                   = "title"
	titleFlagUsageConstant                  = "Title centered between the border lines; positional arguments are used when omitted."
	paddingFlagNameConstant                 = "padding"
	paddingFlagUsageConstant                = "Spaces added on each side of the title; negative values are treated as 0."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	bannerConfigurationKeyConstant          = "banner"
	bannerWidthConfigKeyConstant            = bannerConfigurationKeyConstant + ".width"
	bannerBorderCharacterConfigKeyConstant  = bannerConfigurationKeyConstant + ".border_char"
	bannerTitleConfigKeyConstant            = bannerConfigurationKeyConstant + ".title"
	bannerPaddingConfigKeyConstant          = bannerConfigurationKeyConstant + ".padding"
	environmentPrefixConstant               = "BANNER"
	configurationSearchPathEnvironmentName  = "BANNER_CONFIG_SEARCH_PATH"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	bannerRenderErrorTemplateConstant       = "unable to print banner: %w"
	bannerRequestedMessageConstant          = "banner requested"
	bannerPrintedMessageConstant            = "banner printed"
	logFieldWidthConstant                   = "width"
	logFieldBorderCharacterConstant         = "border_char"
	logFieldTitlePresentConstant            = "title_present"
	logFieldPaddingConstant                 = "padding"
	logFieldArgumentCountConstant           = "argument_count"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	logLevelSettingNameConstant             = "log level"
	logFormatSettingNameConstant            = "log format"
	titleWordSeparatorConstant              = " "
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Banner BannerConfiguration            `mapstructure:"banner"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// BannerConfiguration holds banner parameters as text so the banner package performs the numeric coercion.
type BannerConfiguration struct {
	Width           string  `mapstructure:"width"`
	BorderCharacter string  `mapstructure:"border_char"`
	Title           *string `mapstructure:"title"`
	Padding         string  `mapstructure:"padding"`
}

// ApplicationStreams names the sinks used by an application instance.
type ApplicationStreams struct {
	Output      io.Writer
	Diagnostics io.Writer
}

// Application wires the Cobra root command, configuration loader, structured logger, and banner printer.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	printer               *banner.Printer
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	widthFlagValue        string
	borderFlagValue       string
	titleFlagValue        string
	paddingFlagValue      string
}

// NewApplication assembles a CLI application writing banners to standard output and diagnostics to standard error.
func NewApplication() *Application {
	return NewApplicationWithStreams(ApplicationStreams{Output: os.Stdout, Diagnostics: os.Stderr})
}

// NewApplicationWithStreams assembles a CLI application bound to the provided sinks.
// Nil sinks fall back to standard output and standard error.
func NewApplicationWithStreams(streams ApplicationStreams) *Application {
	if streams.Output == nil {
		streams.Output = os.Stdout
	}
	if streams.Diagnostics == nil {
		streams.Diagnostics = os.Stderr
	}

	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())
	configurationLoader.BindEnvironmentKeys(bannerTitleConfigKeyConstant)

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactoryWithSink(streams.Diagnostics),
		logger:              zap.NewNop(),
		printer:             banner.NewPrinter(streams.Output),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationUseConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetOut(streams.Output)
	cobraCommand.SetErr(streams.Diagnostics)

	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", flags.FormatChoiceUsage(string(utils.LogLevelInfo), utils.SupportedLogLevels(), logLevelFlagDescriptionConstant))
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", flags.FormatChoiceUsage(string(utils.LogFormatStructured), utils.SupportedLogFormats(), logFormatFlagDescriptionConstant))

	cobraCommand.Flags().StringVar(&application.widthFlagValue, widthFlagNameConstant, strconv.Itoa(banner.DefaultWidth), widthFlagUsageConstant)
	cobraCommand.Flags().StringVar(&application.borderFlagValue, borderCharacterFlagNameConstant, banner.DefaultBorderCharacter, borderCharacterFlagUsageConstant)
	cobraCommand.Flags().StringVar(&application.titleFlagValue, titleFlagNameConstant, "", titleFlagUsageConstant)
	cobraCommand.Flags().StringVar(&application.paddingFlagValue, paddingFlagNameConstant, strconv.Itoa(banner.DefaultPadding), paddingFlagUsageConstant)

	application.rootCommand = cobraCommand

	return application
}

// SetArguments replaces the arguments parsed by the next Execute call.
func (application *Application) SetArguments(arguments []string) {
	application.rootCommand.SetArgs(arguments)
}

// Configuration returns the configuration resolved by the most recent execution.
func (application *Application) Configuration() ApplicationConfiguration {
	return application.configuration
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if overridePath := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentName)); len(overridePath) > 0 {
		searchPaths = append([]string{overridePath}, searchPaths...)
	}
	return searchPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:        string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant:       string(utils.LogFormatStructured),
		bannerWidthConfigKeyConstant:           strconv.Itoa(banner.DefaultWidth),
		bannerBorderCharacterConfigKeyConstant: banner.DefaultBorderCharacter,
		bannerPaddingConfigKeyConstant:         strconv.Itoa(banner.DefaultPadding),
	}

	application.configuration = ApplicationConfiguration{}
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logLevel, logLevelError := flags.NormalizeChoice(logLevelSettingNameConstant, application.configuration.Common.LogLevel, utils.SupportedLogLevels())
	if logLevelError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, logLevelError)
	}

	logFormat, logFormatError := flags.NormalizeChoice(logFormatSettingNameConstant, application.configuration.Common.LogFormat, utils.SupportedLogFormats())
	if logFormatError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, logFormatError)
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(utils.LogLevel(logLevel), utils.LogFormat(logFormat))
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, logLevel),
		zap.String(configurationLogFormatFieldConstant, logFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	rawOptions := application.resolveBannerOptions(command, arguments)

	application.logger.Debug(
		bannerRequestedMessageConstant,
		zap.Any(logFieldWidthConstant, rawOptions.Width),
		zap.Any(logFieldBorderCharacterConstant, rawOptions.BorderCharacter),
		zap.Bool(logFieldTitlePresentConstant, rawOptions.Title != nil),
		zap.Any(logFieldPaddingConstant, rawOptions.Padding),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	if printError := application.printer.PrintRaw(rawOptions); printError != nil {
		return fmt.Errorf(bannerRenderErrorTemplateConstant, printError)
	}

	application.logger.Debug(bannerPrintedMessageConstant)

	return nil
}

// resolveBannerOptions layers explicit flags and positional title words over the loaded configuration.
func (application *Application) resolveBannerOptions(command *cobra.Command, arguments []string) banner.RawOptions {
	bannerConfiguration := application.configuration.Banner
	rawOptions := banner.RawOptions{
		Width:           bannerConfiguration.Width,
		BorderCharacter: bannerConfiguration.BorderCharacter,
		Title:           bannerConfiguration.Title,
		Padding:         bannerConfiguration.Padding,
	}

	commandFlags := command.Flags()
	if commandFlags.Changed(widthFlagNameConstant) {
		rawOptions.Width = application.widthFlagValue
	}
	if commandFlags.Changed(borderCharacterFlagNameConstant) {
		rawOptions.BorderCharacter = application.borderFlagValue
	}
	if commandFlags.Changed(paddingFlagNameConstant) {
		rawOptions.Padding = application.paddingFlagValue
	}

	switch {
	case commandFlags.Changed(titleFlagNameConstant):
		title := application.titleFlagValue
		rawOptions.Title = &title
	case len(arguments) > 0:
		title := strings.Join(arguments, titleWordSeparatorConstant)
		rawOptions.Title = &title
	}

	return rawOptions
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
